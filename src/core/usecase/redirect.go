package usecase

import "jokeboard/src/core/domain"

// RedirectPolicy whitelists post-auth redirect destinations so an
// attacker-controlled redirectTo field can never send the client off-site.
type RedirectPolicy struct {
	allowed []string
}

// NewRedirectPolicy builds the allow-list. trusted is an optional external
// URL (from configuration) that is additionally permitted; empty means only
// local destinations are allowed.
func NewRedirectPolicy(trusted string) *RedirectPolicy {
	allowed := []string{domain.DefaultRedirectTarget, "/"}
	if trusted != "" {
		allowed = append(allowed, trusted)
	}
	return &RedirectPolicy{allowed: allowed}
}

// Safe maps an arbitrary untrusted value into the allow-list. Anything not
// on the list, including the empty string, falls back to the default target
// rather than erroring.
func (p *RedirectPolicy) Safe(raw string) string {
	for _, a := range p.allowed {
		if raw == a {
			return raw
		}
	}
	return domain.DefaultRedirectTarget
}
