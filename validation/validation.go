package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidName  = errors.New("name must be a string with at least 2 characters")
	ErrInvalidEmail = errors.New("invalid email address")
)

// emailPattern accepts local-part "@" domain "." tld with no whitespace
// anywhere. Anchored, so a value containing spaces never matches.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateName checks that the name, after trimming, is at least 2 characters.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrInvalidName
	}
	return nil
}

// ValidateRawName applies the length threshold to the string as provided,
// before any trimming. The update path uses this: a name of " x " passes
// here and is trimmed only when stored.
func ValidateRawName(name string) error {
	if len(name) < 2 {
		return ErrInvalidName
	}
	return nil
}

// ValidateEmail checks the syntactic shape of an email address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail returns the canonical stored form of an email address.
// Uniqueness comparisons run on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
