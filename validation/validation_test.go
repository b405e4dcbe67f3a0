package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"two characters", "Jo", true},
		{"full name", "John Doe", true},
		{"padded short name passes after trim", "  Jo  ", true},
		{"empty", "", false},
		{"single character", "J", false},
		{"whitespace only", "   ", false},
		{"one char padded fails after trim", " J ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidName)
			}
		})
	}
}

func TestValidateRawName(t *testing.T) {
	// The raw check counts the string as provided; surrounding whitespace
	// counts toward the threshold.
	assert.NoError(t, ValidateRawName(" J "))
	assert.NoError(t, ValidateRawName("Jo"))
	assert.ErrorIs(t, ValidateRawName("J"), ErrInvalidName)
	assert.ErrorIs(t, ValidateRawName(""), ErrInvalidName)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "john@example.com", true},
		{"subdomain", "a@mail.example.co", true},
		{"uppercase", "JOHN@EXAMPLE.COM", true},
		{"missing at", "johnexample.com", false},
		{"missing dot after at", "john@example", false},
		{"embedded space", "john doe@example.com", false},
		{"leading space", " john@example.com", false},
		{"trailing space", "john@example.com ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", NormalizeEmail("  John@Example.COM  "))
	assert.Equal(t, "a@b.c", NormalizeEmail("a@b.c"))
}
