// Package dto holds the request and response bodies shared by the HTTP and
// gRPC transports.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// IDString is a cedula as sent by clients: either a JSON number or a
// JSON string. It keeps the textual form for sanitizing.
type IDString string

func (s *IDString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = IDString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("cedula must be a number or a string")
	}
	if i, err := n.Int64(); err == nil {
		*s = IDString(strconv.FormatInt(i, 10))
		return nil
	}
	*s = IDString(n.String())
	return nil
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    *string   `json:"email,omitempty"`
	Cedula   *IDString `json:"cedula,omitempty"`
	Password *string   `json:"password,omitempty"`
}

// Credentials sanitizes the request into login credentials.
func (r LoginRequest) Credentials() models.Credentials {
	c := models.Credentials{
		Email:    validators.SanitizeEmail(r.Email),
		Password: validators.SanitizePassword(r.Password),
	}
	if r.Cedula != nil {
		c.Cedula = validators.SanitizeID(string(*r.Cedula))
		c.CedulaDigits = validators.IDDigits(string(*r.Cedula))
	}
	return c
}

type LoginData struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// Identity is the user as known from token claims alone.
type Identity struct {
	ID        int64   `json:"cedula"`
	Email     *string `json:"email"`
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	Role      string  `json:"rol"`
}

func IdentityFromClaims(c *auth.Claims) Identity {
	return Identity{
		ID:        c.UserID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      c.Role,
	}
}

type MeData struct {
	User Identity `json:"user"`
}

type HealthData struct {
	DB string `json:"db"`
}

// Envelope is the JSON wrapper of every API response.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func Success[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error envelope with a null data field.
func Failure(message string) Envelope[any] {
	return Envelope[any]{Status: StatusError, Message: message}
}
