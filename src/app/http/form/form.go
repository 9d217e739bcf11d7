// Package form parses URL-encoded form submissions into typed values.
//
// Parsing is deliberately separate from semantic validation: a submission
// with a required field missing is rejected here as malformed, before any
// field validator runs.
package form

import (
	"errors"
	"net/http"
	"net/url"
)

// ErrMalformed is returned when a required field is absent from the
// submission. Handlers turn it into a form-level error with no field errors.
var ErrMalformed = errors.New("form submitted incorrectly")

// JokeSubmission is a parsed joke-creation form.
type JokeSubmission struct {
	Name    string
	Content string
}

// Echo returns the submitted values for redisplaying the form pre-filled.
func (s *JokeSubmission) Echo() map[string]string {
	return map[string]string{
		"name":    s.Name,
		"content": s.Content,
	}
}

// AuthSubmission is a parsed login-or-register form.
type AuthSubmission struct {
	LoginType  string
	Username   string
	Password   string
	RedirectTo string
}

// Echo returns the submitted values for redisplaying the form pre-filled.
// The password is intentionally not echoed back.
func (s *AuthSubmission) Echo() map[string]string {
	return map[string]string{
		"loginType":  s.LoginType,
		"username":   s.Username,
		"redirectTo": s.RedirectTo,
	}
}

// ParseJoke extracts a joke submission from the request body.
func ParseJoke(r *http.Request) (*JokeSubmission, error) {
	values, err := postForm(r)
	if err != nil {
		return nil, err
	}

	name, ok := field(values, "name")
	if !ok {
		return nil, ErrMalformed
	}
	content, ok := field(values, "content")
	if !ok {
		return nil, ErrMalformed
	}

	return &JokeSubmission{Name: name, Content: content}, nil
}

// ParseAuth extracts a login-or-register submission from the request body.
// redirectTo is optional; the redirect policy supplies the default.
func ParseAuth(r *http.Request) (*AuthSubmission, error) {
	values, err := postForm(r)
	if err != nil {
		return nil, err
	}

	loginType, ok := field(values, "loginType")
	if !ok {
		return nil, ErrMalformed
	}
	username, ok := field(values, "username")
	if !ok {
		return nil, ErrMalformed
	}
	password, ok := field(values, "password")
	if !ok {
		return nil, ErrMalformed
	}
	redirectTo, _ := field(values, "redirectTo")

	return &AuthSubmission{
		LoginType:  loginType,
		Username:   username,
		Password:   password,
		RedirectTo: redirectTo,
	}, nil
}

func postForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, ErrMalformed
	}
	return r.PostForm, nil
}

// field distinguishes an absent key from an empty value: an empty string is
// a present field and goes through semantic validation like any other value.
func field(values url.Values, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
