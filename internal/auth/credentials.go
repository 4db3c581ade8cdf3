package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when supplied credentials do not match the configured pair.
var ErrUnauthorized = errors.New("incorrect username or password")

// Credentials is the single configured username/password pair. When PasswordHash
// is set it holds a bcrypt hash and Password is ignored.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Verify compares username and password against the configured pair without
// short-circuiting, so both checks always run.
func (c Credentials) Verify(username, password string) error {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passwordOK bool
	if c.PasswordHash != "" {
		passwordOK = VerifyPassword(c.PasswordHash, password)
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	if !(usernameOK && passwordOK) {
		return ErrUnauthorized
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
