package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectPolicySafe(t *testing.T) {
	const trusted = "https://jokes.example.com"
	policy := NewRedirectPolicy(trusted)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"default target", "/jokes", "/jokes"},
		{"root", "/", "/"},
		{"trusted external", trusted, trusted},
		{"empty falls back", "", "/jokes"},
		{"attacker url falls back", "https://evil.example", "/jokes"},
		{"relative path falls back", "/admin", "/jokes"},
		{"protocol-relative falls back", "//evil.example", "/jokes"},
		{"prefix of allowed falls back", "/jokes/../admin", "/jokes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Safe(tt.input))
		})
	}
}

func TestRedirectPolicyWithoutTrustedURL(t *testing.T) {
	policy := NewRedirectPolicy("")

	assert.Equal(t, "/jokes", policy.Safe("/jokes"))
	assert.Equal(t, "/", policy.Safe("/"))
	// No trusted URL configured, so even a plausible one falls back.
	assert.Equal(t, "/jokes", policy.Safe("https://jokes.example.com"))
}
