package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/softasistence/internal/server/auth"
)

func TestLoginRequest_CedulaForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{name: "number", body: `{"cedula":12345678,"password":"x"}`, want: 12345678},
		{name: "string", body: `{"cedula":"12345678","password":"x"}`, want: 12345678},
		{name: "formatted string", body: `{"cedula":"12.345.678"}`, want: 12345678},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req LoginRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			c := req.Credentials()
			require.NotNil(t, c.Cedula)
			assert.Equal(t, tt.want, *c.Cedula)
		})
	}
}

func TestLoginRequest_CedulaBeyondInt64(t *testing.T) {
	var req LoginRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cedula":12345678901234567890123}`), &req))

	c := req.Credentials()
	assert.Nil(t, c.Cedula)
	assert.Equal(t, "12345678901234567890123", c.CedulaDigits)
}

func TestLoginRequest_Invalid(t *testing.T) {
	var req LoginRequest
	assert.Error(t, json.Unmarshal([]byte(`{"cedula":true}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"password":123}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &req))
}

func TestLoginRequest_Credentials(t *testing.T) {
	var req LoginRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"  Ana@Example.com ","cedula":null,"password":" Password123 "}`), &req))

	c := req.Credentials()
	require.NotNil(t, c.Email)
	assert.Equal(t, "ana@example.com", *c.Email)
	assert.Nil(t, c.Cedula)
	require.NotNil(t, c.Password)
	assert.Equal(t, "Password123", *c.Password)

	empty := LoginRequest{}.Credentials()
	assert.Nil(t, empty.Email)
	assert.Nil(t, empty.Cedula)
	assert.Nil(t, empty.Password)
}

func TestEnvelope_JSON(t *testing.T) {
	b, err := json.Marshal(Failure("Credenciales inválidas"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"Credenciales inválidas","data":null}`, string(b))

	b, err = json.Marshal(Success("ok", HealthData{DB: "up"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"ok","data":{"db":"up"}}`, string(b))
}

func TestIdentityFromClaims(t *testing.T) {
	email := "a@b.co"
	id := IdentityFromClaims(&auth.Claims{UserID: 12345678, Email: &email, FirstName: "A", LastName: "B", Role: "instrutor"})

	b, err := json.Marshal(MeData{User: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"cedula":12345678,"email":"a@b.co","nombre":"A","apellido":"B","rol":"instrutor"}}`, string(b))
}
