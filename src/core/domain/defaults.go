package domain

// MinJokeNameLen is the minimum length of a joke's name.
const MinJokeNameLen = 3

// MinJokeContentLen is the minimum length of a joke's content.
const MinJokeContentLen = 10

// MinUsernameLen is the minimum length of a username at registration.
const MinUsernameLen = 3

// MinPasswordLen is the minimum length of a password at registration.
const MinPasswordLen = 6

// DefaultRedirectTarget is where clients land after auth when no (or an
// untrusted) redirect target was submitted.
const DefaultRedirectTarget = "/jokes"
