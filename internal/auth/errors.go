package auth

import (
	"errors"
	"fmt"
)

// ErrUserNotFound and ErrInvalidPassword both mean "login failed". They stay
// distinct at this layer so callers can log which one happened; the HTTP
// layer presents them identically to avoid username enumeration.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// ErrInvalidToken covers every token verification failure: malformed
// structure, bad signature, or expired claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrInvalidUsername rejects usernames outside the 3-50 character
// letters/digits/underscore format.
var ErrInvalidUsername = errors.New("username must be 3-50 characters of letters, digits and underscores")

// WeakPasswordError reports the first password policy violation.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + e.Reason
}

// UsernameTakenError signals a registration conflict on the username.
type UsernameTakenError struct {
	Username string
}

func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("username %q already exists", e.Username)
}

// HashError wraps an internal failure of the credential hasher. It is never
// caused by bad user input and maps to a 5xx response.
type HashError struct {
	Err error
}

func (e *HashError) Error() string { return "hashing error: " + e.Err.Error() }

func (e *HashError) Unwrap() error { return e.Err }
