package models

import (
	"strings"
	"time"
)

// Role is the canonical role tag stored in usuarios.rol.
type Role string

const (
	RoleUnknown       Role = ""
	RoleAdministrator Role = "administrador"
	RoleInstructor    Role = "instrutor"
)

var roleSynonyms = map[string]Role{
	"administrador": RoleAdministrator,
	"administrator": RoleAdministrator,
	"admin":         RoleAdministrator,
	"instrutor":     RoleInstructor,
	"instructor":    RoleInstructor,
}

// NormalizeRole maps a stored or user-supplied role string to its canonical
// tag, ignoring case and surrounding whitespace. Unrecognized values yield
// RoleUnknown.
func NormalizeRole(s string) Role {
	return roleSynonyms[strings.ToLower(strings.TrimSpace(s))]
}

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleInstructor
}

// User is a row of the usuarios table. ID is the cedula.
type User struct {
	ID           int64
	Email        *string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of a User. It never carries the hash.
type PublicUser struct {
	ID        int64   `json:"cedula"`
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	Email     *string `json:"email"`
	Role      Role    `json:"rol"`
	Active    bool    `json:"activo"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
	}
}

// Credentials are sanitized login inputs. At least one identifier is set
// after validation; Email takes priority over Cedula.
type Credentials struct {
	Email  *string
	Cedula *int64
	// CedulaDigits is the sanitized cedula text. It is set even when the
	// value does not fit in Cedula.
	CedulaDigits string
	Password     *string
}
