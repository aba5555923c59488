package validators

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

// NewUser is the operator input for seeding an account.
type NewUser struct {
	Cedula    string `validate:"required,number,min=8,max=15"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"omitempty,email_shape"`
	Password  string `validate:"required,min=8,no_whitespace"`
	Role      string `validate:"required,role"`
}

// RegisterCustomValidators registers the tags used by NewUser.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("no_whitespace", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsSpace) < 0
	}); err != nil {
		return err
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.NormalizeRole(fl.Field().String()).Valid()
	})
}

var fieldMessages = map[string]string{
	"Cedula":    msgInvalidID,
	"FirstName": "El nombre es obligatorio",
	"LastName":  "El apellido es obligatorio",
	"Email":     msgInvalidEmail,
	"Role":      `rol inválido, use "administrador" o "instrutor"`,
}

// ValidateNewUser checks u and reports the first failing field as a
// ValidationError. Password failures reuse the login password messages.
func ValidateNewUser(u NewUser) error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate user: %w", err)
	}

	fe := fieldErrs[0]
	if fe.Field() == "Password" {
		pw := u.Password
		if perr := ValidatePassword(&pw); perr != nil {
			return perr
		}
	}
	msg, ok := fieldMessages[fe.Field()]
	if !ok {
		msg = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
	return newError(CodeInvalidField, msg)
}
