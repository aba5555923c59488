// Package validators sanitizes and validates login input. Every function is
// pure and safe to call concurrently.
package validators

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return v
}

// SanitizeEmail trims and lower-cases raw. Nil or blank input yields nil.
func SanitizeEmail(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(*raw))
	if s == "" {
		return nil
	}
	return &s
}

// IDDigits keeps only the ASCII digits of raw, without leading zeros.
// Input with no digits, or only zeros, yields "".
func IDDigits(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	return strings.TrimLeft(digits, "0")
}

// SanitizeID parses the digits of raw. Empty or zero input yields nil, and
// so does a value too large for int64; IDDigits still reports it.
func SanitizeID(raw string) *int64 {
	digits := IDDigits(raw)
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// SanitizePassword trims raw. Nil or blank input yields nil.
func SanitizePassword(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	return &s
}

// IsValidEmail reports whether s has the local@domain.tld shape with a
// top-level domain of at least two characters.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidID reports whether s is 8 to 15 ASCII digits.
func IsValidID(s string) bool {
	return validate.Var(s, "required,number,min=8,max=15") == nil
}

// ValidatePassword checks presence, length and absence of whitespace, in
// that order. The value is not trimmed.
func ValidatePassword(s *string) error {
	if s == nil {
		return newError(CodeEmptyPassword, msgPasswordRequired)
	}
	if strings.TrimSpace(*s) == "" {
		return newError(CodeEmptyPassword, msgPasswordBlank)
	}
	if utf8.RuneCountInString(*s) < minPasswordLength {
		return newError(CodeTooShort, msgPasswordShort)
	}
	if strings.IndexFunc(*s, unicode.IsSpace) >= 0 {
		return newError(CodeContainsWhitespace, msgPasswordSpaces)
	}
	return nil
}

// ValidateLoginCredentials returns the first failing rule: identifier
// presence, email format, cedula format, then the password rules.
func ValidateLoginCredentials(c models.Credentials) error {
	digits := c.CedulaDigits
	if c.Cedula != nil {
		digits = strconv.FormatInt(*c.Cedula, 10)
	}

	if c.Email == nil && digits == "" {
		return newError(CodeMissingIdentifier, msgMissingIdentifier)
	}
	if c.Email != nil && !IsValidEmail(*c.Email) {
		return newError(CodeInvalidEmailFormat, msgInvalidEmail)
	}
	if digits != "" && !IsValidID(digits) {
		return newError(CodeInvalidIDFormat, msgInvalidID)
	}
	return ValidatePassword(c.Password)
}
