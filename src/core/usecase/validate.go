package usecase

import (
	"fmt"
	"unicode/utf8"

	"jokeboard/src/core/domain"
)

// Field validators used by the form handlers. Each takes a single submitted
// value and returns a human-readable message, or "" when the value is
// acceptable. Lengths are counted in runes so multi-byte input is not
// over-counted. Missing fields never reach these functions; the form parsing
// step rejects them first.

// ValidateJokeName checks the name of a joke submission.
func ValidateJokeName(name string) string {
	if utf8.RuneCountInString(name) < domain.MinJokeNameLen {
		return "that joke's name is too short"
	}
	return ""
}

// ValidateJokeContent checks the content of a joke submission.
func ValidateJokeContent(content string) string {
	if utf8.RuneCountInString(content) < domain.MinJokeContentLen {
		return "that joke is too short"
	}
	return ""
}

// ValidateUsername checks a username at registration or login.
func ValidateUsername(username string) string {
	if utf8.RuneCountInString(username) < domain.MinUsernameLen {
		return fmt.Sprintf("usernames must be at least %d characters long", domain.MinUsernameLen)
	}
	return ""
}

// ValidatePassword checks a password at registration or login.
func ValidatePassword(password string) string {
	if utf8.RuneCountInString(password) < domain.MinPasswordLen {
		return fmt.Sprintf("passwords must be at least %d characters long", domain.MinPasswordLen)
	}
	return ""
}
