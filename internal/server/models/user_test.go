package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"administrador", RoleAdministrator},
		{"Administrator", RoleAdministrator},
		{" ADMIN ", RoleAdministrator},
		{"instrutor", RoleInstructor},
		{"instructor", RoleInstructor},
		{"Instructor\n", RoleInstructor},
		{"aprendiz", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeRole(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != RoleUnknown, got.Valid())
		})
	}
}

func TestUser_Public(t *testing.T) {
	email := "ana@example.com"
	u := &User{
		ID:           12345678,
		Email:        &email,
		PasswordHash: "$2a$10$secret",
		FirstName:    "Ana",
		LastName:     "Pérez",
		Role:         RoleInstructor,
		Active:       true,
	}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, map[string]any{
		"cedula":   float64(12345678),
		"nombre":   "Ana",
		"apellido": "Pérez",
		"email":    "ana@example.com",
		"rol":      "instrutor",
		"activo":   true,
	}, got)
	assert.NotContains(t, string(b), "secret")
}

func TestUser_Public_NullEmail(t *testing.T) {
	b, err := json.Marshal((&User{ID: 1, Role: RoleAdministrator}).Public())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"email":null`)
}
