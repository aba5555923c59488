package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt cost used when seeding accounts.
const DefaultCost = 10

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches hash. A malformed or
// empty hash never matches.
func ComparePassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
