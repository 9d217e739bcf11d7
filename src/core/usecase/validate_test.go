package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJokeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"one char", "a", true},
		{"two chars", "ab", true},
		{"three chars", "abc", false},
		{"two runes multi-byte", "éé", true},
		{"three runes multi-byte", "ééé", false},
		{"long", "a perfectly fine joke name", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateJokeName(tt.input)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateJokeContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"nine chars", "123456789", true},
		{"ten chars", "1234567890", false},
		{"long", strings.Repeat("ha", 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateJokeContent(tt.input)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NotEmpty(t, ValidateUsername(""))
	assert.NotEmpty(t, ValidateUsername("ab"))
	assert.NotEmpty(t, ValidateUsername("éé"))
	assert.Empty(t, ValidateUsername("bob"))
	assert.Empty(t, ValidateUsername("bøb"))
	assert.Empty(t, ValidateUsername("a_much_longer_username"))
}

func TestValidatePassword(t *testing.T) {
	assert.NotEmpty(t, ValidatePassword(""))
	assert.NotEmpty(t, ValidatePassword("12345"))
	assert.NotEmpty(t, ValidatePassword("ééééé"))
	assert.Empty(t, ValidatePassword("123456"))
	assert.Empty(t, ValidatePassword("correct horse battery staple"))
}
