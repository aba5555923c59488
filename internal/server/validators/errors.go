package validators

import "github.com/dmitrijs2005/softasistence/internal/common"

// Code identifies which input rule failed.
type Code string

const (
	CodeMissingIdentifier  Code = "MissingIdentifier"
	CodeInvalidEmailFormat Code = "InvalidEmailFormat"
	CodeInvalidIDFormat    Code = "InvalidIdFormat"
	CodeEmptyPassword      Code = "EmptyPassword"
	CodeTooShort           Code = "TooShort"
	CodeContainsWhitespace Code = "ContainsWhitespace"
	CodeInvalidField       Code = "InvalidField"
)

// ValidationError carries a rule code and the user-facing message.
// errors.Is(err, common.ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Code    Code
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

func newError(code Code, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

const (
	msgMissingIdentifier = "Debe proporcionar email o cédula"
	msgInvalidEmail      = "El formato del email no es válido"
	msgInvalidID         = "La cédula debe tener entre 8 y 15 dígitos"
	msgPasswordRequired  = "La contraseña es requerida"
	msgPasswordBlank     = "La contraseña no puede estar vacía"
	msgPasswordShort     = "La contraseña debe tener al menos 8 caracteres"
	msgPasswordSpaces    = "La contraseña no puede contener espacios"
)
