package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest input bcrypt hashes without truncation.
const MaxLength = 72

var (
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password must be at most %d bytes", MaxLength)
	ErrInvalidPassword = errors.New("invalid password")
)

// Hash returns the bcrypt hash stored in users.password.
func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxLength:
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}
