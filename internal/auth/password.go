package auth

import "regexp"

// Validation patterns, compiled once at package init and read-only afterwards.
var (
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	passwordUppercase = regexp.MustCompile(`[A-Z]`)
	passwordLowercase = regexp.MustCompile(`[a-z]`)
	passwordDigit     = regexp.MustCompile(`[0-9]`)
	passwordSpecial   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':.,<>/?]`)
)

// ValidateUsername checks the username format: 3-50 characters, letters,
// digits and underscores only.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword enforces the registration password policy. Checks run in
// a fixed order (length, uppercase, lowercase, digit, special) and the first
// violation wins.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &WeakPasswordError{Reason: "password must be at least 8 characters long"}
	}
	if !passwordUppercase.MatchString(password) {
		return &WeakPasswordError{Reason: "password must contain at least one uppercase letter"}
	}
	if !passwordLowercase.MatchString(password) {
		return &WeakPasswordError{Reason: "password must contain at least one lowercase letter"}
	}
	if !passwordDigit.MatchString(password) {
		return &WeakPasswordError{Reason: "password must contain at least one digit"}
	}
	if !passwordSpecial.MatchString(password) {
		return &WeakPasswordError{Reason: "password must contain at least one special character"}
	}
	return nil
}
