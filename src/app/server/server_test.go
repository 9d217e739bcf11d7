package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokeboard/src/app/http/response"
	"jokeboard/src/app/server"
	"jokeboard/src/core/domain"
	"jokeboard/src/infra/config"
	"jokeboard/src/infra/logger"
)

// fakeStore is an in-memory ports.Store used to exercise the full router
// without Postgres.
type fakeStore struct {
	users map[string]*domain.User
	jokes map[uuid.UUID]*domain.Joke
	order []uuid.UUID

	createUserCalls int
	createJokeCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]*domain.User),
		jokes: make(map[uuid.UUID]*domain.Joke),
	}
}

func (f *fakeStore) Health(ctx context.Context) error { return nil }

func (f *fakeStore) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	f.createUserCalls++
	if _, ok := f.users[username]; ok {
		return nil, domain.NewAlreadyExistsError("username already taken")
	}
	u := &domain.User{ID: uuid.New(), Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[username] = u
	return u, nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, domain.NewNotFoundError("user")
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (f *fakeStore) CreateJoke(ctx context.Context, name, content string, ownerID uuid.UUID) (*domain.Joke, error) {
	f.createJokeCalls++
	j := &domain.Joke{ID: uuid.New(), Name: name, Content: content, OwnerID: ownerID, CreatedAt: time.Now()}
	f.jokes[j.ID] = j
	f.order = append(f.order, j.ID)
	return j, nil
}

func (f *fakeStore) GetJoke(ctx context.Context, jokeID uuid.UUID) (*domain.Joke, error) {
	if j, ok := f.jokes[jokeID]; ok {
		return j, nil
	}
	return nil, domain.NewNotFoundError("joke")
}

func (f *fakeStore) ListJokes(ctx context.Context, page, perPage int) ([]domain.Joke, int64, error) {
	var out []domain.Joke
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, *f.jokes[f.order[i]])
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) RandomJoke(ctx context.Context) (*domain.Joke, error) {
	for _, id := range f.order {
		return f.jokes[id], nil
	}
	return nil, domain.NewNotFoundError("joke")
}

func (f *fakeStore) DeleteJoke(ctx context.Context, jokeID uuid.UUID) error {
	if _, ok := f.jokes[jokeID]; !ok {
		return domain.NewNotFoundError("joke")
	}
	delete(f.jokes, jokeID)
	for i, id := range f.order {
		if id == jokeID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

const (
	testCookieName = "jokeboard_session"
	trustedURL     = "https://jokes.example.com"
)

func newTestServer(t *testing.T) (*server.Server, *fakeStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "error", Format: "text"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: testCookieName,
		},
		Auth: config.AuthConfig{TrustedRedirect: trustedURL},
	}
	log := logger.NewWithWriter(cfg.Log, io.Discard)

	store := newFakeStore()
	return server.New(cfg, log, store), store
}

func postForm(t *testing.T, srv *server.Server, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func doRequest(t *testing.T, srv *server.Server, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

// registerUser registers through the endpoint and returns the session cookie.
func registerUser(t *testing.T, srv *server.Server, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"register"},
		"username":  {username},
		"password":  {password},
	})
	require.Equal(t, http.StatusFound, w.Code, "registration failed: %s", w.Body.String())
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", testCookieName)
	return nil
}

func formRejection(t *testing.T, w *httptest.ResponseRecorder) response.FormRejection {
	t.Helper()
	var payload response.FormRejection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/health/detailed")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAuthRegister(t *testing.T) {
	srv, store := newTestServer(t)

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"register"},
		"username":  {"bob"},
		"password":  {"secret1"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/jokes", w.Header().Get("Location"))
	assert.NotEmpty(t, sessionCookie(t, w).Value)
	assert.Equal(t, 1, store.createUserCalls)
}

func TestAuthRegisterDuplicate(t *testing.T) {
	srv, store := newTestServer(t)
	registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"register"},
		"username":  {"bob"},
		"password":  {"different1"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.Contains(t, payload.FormError, "already exists")
	assert.Empty(t, payload.FieldErrors)
	assert.Equal(t, "bob", payload.Fields["username"])
	// Only the first registration reached the store.
	assert.Equal(t, 1, store.createUserCalls)
}

func TestAuthLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"login"},
		"username":  {"bob"},
		"password":  {"secret1"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/jokes", w.Header().Get("Location"))
	assert.NotEmpty(t, sessionCookie(t, w).Value)
}

func TestAuthLoginGenericFailure(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "bob", "secret1")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nouser", "whatever1"},
		{"wrong password", "bob", "wrongpwd"},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(t, srv, "/v1/auth", url.Values{
				"loginType": {"login"},
				"username":  {tc.username},
				"password":  {tc.password},
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			payload := formRejection(t, w)
			assert.Contains(t, payload.FormError, "incorrect")
			assert.Empty(t, payload.FieldErrors)
			messages = append(messages, payload.FormError)
		})
	}
	// Same message either way: no account enumeration.
	require.Len(t, messages, 2)
	assert.Equal(t, messages[0], messages[1])
}

func TestAuthFieldValidation(t *testing.T) {
	srv, store := newTestServer(t)

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"register"},
		"username":  {"ab"},
		"password":  {"short"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.NotEmpty(t, payload.FieldErrors["username"])
	assert.NotEmpty(t, payload.FieldErrors["password"])
	assert.Equal(t, "ab", payload.Fields["username"])
	assert.NotContains(t, payload.Fields, "password")
	assert.Zero(t, store.createUserCalls)
}

func TestAuthMissingFieldIsMalformed(t *testing.T) {
	srv, store := newTestServer(t)

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"login"},
		"username":  {"bob"},
		// no password field at all
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.NotEmpty(t, payload.FormError)
	assert.Empty(t, payload.FieldErrors)
	assert.Zero(t, store.createUserCalls)
}

func TestAuthInvalidLoginType(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"delete-everything"},
		"username":  {"bob"},
		"password":  {"secret1"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.Contains(t, payload.FormError, "login type")
}

func TestAuthRedirectTargets(t *testing.T) {
	tests := []struct {
		name       string
		redirectTo string
		want       string
	}{
		{"default when absent", "", "/jokes"},
		{"root allowed", "/", "/"},
		{"trusted external allowed", trustedURL, trustedURL},
		{"attacker url falls back", "https://evil.example", "/jokes"},
		{"arbitrary path falls back", "/admin", "/jokes"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			values := url.Values{
				"loginType": {"register"},
				"username":  {"bob" + string(rune('a'+i))},
				"password":  {"secret1"},
			}
			if tt.redirectTo != "" {
				values.Set("redirectTo", tt.redirectTo)
			}
			w := postForm(t, srv, "/v1/auth", values)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestAuthMe(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := registerUser(t, srv, "bob", "secret1")
	w = doRequest(t, srv, http.MethodGet, "/v1/auth/me", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob")
}

func TestAuthMeRejectsTamperedCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")
	cookie.Value += "tampered"

	w := doRequest(t, srv, http.MethodGet, "/v1/auth/me", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthLogout(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/auth/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestJokeCreateRequiresSession(t *testing.T) {
	srv, store := newTestServer(t)

	w := postForm(t, srv, "/v1/jokes", url.Values{
		"name":    {"knock knock"},
		"content": {"who's there? absolutely nobody"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, store.createJokeCalls)
}

func TestJokeCreateFieldValidation(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/jokes", url.Values{
		"name":    {"ab"},
		"content": {"1234567890"},
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.NotEmpty(t, payload.FieldErrors["name"])
	assert.NotContains(t, payload.FieldErrors, "content")
	assert.Equal(t, "ab", payload.Fields["name"])
	assert.Equal(t, "1234567890", payload.Fields["content"])
	assert.Zero(t, store.createJokeCalls)
}

func TestJokeCreateMissingFieldIsMalformed(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/jokes", url.Values{
		"name": {"knock knock"},
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := formRejection(t, w)
	assert.NotEmpty(t, payload.FormError)
	assert.Empty(t, payload.FieldErrors)
	assert.Zero(t, store.createJokeCalls)
}

func TestJokeCreate(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")

	w := postForm(t, srv, "/v1/jokes", url.Values{
		"name":    {"abc"},
		"content": {"1234567890"},
	}, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, 1, store.createJokeCalls)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/jokes/"), "unexpected location %q", location)
	jokeID, err := uuid.Parse(strings.TrimPrefix(location, "/jokes/"))
	require.NoError(t, err)

	joke := store.jokes[jokeID]
	require.NotNil(t, joke)
	assert.Equal(t, "abc", joke.Name)
	assert.Equal(t, "1234567890", joke.Content)
	assert.Equal(t, store.users["bob"].ID, joke.OwnerID)
}

func TestJokeGetAndList(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := registerUser(t, srv, "bob", "secret1")

	postForm(t, srv, "/v1/jokes", url.Values{
		"name":    {"knock knock"},
		"content": {"who's there? the test suite"},
	}, cookie)
	require.Equal(t, 1, store.createJokeCalls)

	w := doRequest(t, srv, http.MethodGet, "/v1/jokes")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "knock knock")

	w = doRequest(t, srv, http.MethodGet, "/v1/jokes/random")
	assert.Equal(t, http.StatusOK, w.Code)

	jokeID := store.order[0]
	w = doRequest(t, srv, http.MethodGet, "/v1/jokes/"+jokeID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), jokeID.String())
}

func TestJokeGetUnknown(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/v1/jokes/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/v1/jokes/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/v1/jokes/random")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJokeDelete(t *testing.T) {
	srv, store := newTestServer(t)
	owner := registerUser(t, srv, "bob", "secret1")
	stranger := registerUser(t, srv, "mallory", "secret2")

	postForm(t, srv, "/v1/jokes", url.Values{
		"name":    {"knock knock"},
		"content": {"who's there? not for long"},
	}, owner)
	jokeID := store.order[0].String()

	w := doRequest(t, srv, http.MethodDelete, "/v1/jokes/"+jokeID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodDelete, "/v1/jokes/"+jokeID, stranger)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, srv, http.MethodDelete, "/v1/jokes/"+jokeID, owner)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.jokes)

	w = doRequest(t, srv, http.MethodDelete, "/v1/jokes/"+jokeID, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestRequestLogOmitsPassword(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: testCookieName,
		},
		Auth: config.AuthConfig{TrustedRedirect: trustedURL},
	}
	var buf bytes.Buffer
	log := logger.NewWithWriter(cfg.Log, &buf)
	srv := server.New(cfg, log, newFakeStore())

	// A successful registration is logged at Info, a failed login at Warn.
	// The submitted password must appear in neither.
	w := postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"register"},
		"username":  {"bob"},
		"password":  {"hunter2secret"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	w = postForm(t, srv, "/v1/auth", url.Values{
		"loginType": {"login"},
		"username":  {"bob"},
		"password":  {"wrongpassword"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	logged := buf.String()
	assert.NotContains(t, logged, "hunter2secret")
	assert.NotContains(t, logged, "wrongpassword")
	assert.Contains(t, logged, "REDACTED")
	assert.Contains(t, logged, "username=bob")
}

func TestServerLifecycle(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            port,
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: testCookieName,
		},
	}
	log := logger.NewWithWriter(cfg.Log, io.Discard)
	srv := server.New(cfg, log, newFakeStore())

	go func() { _ = srv.Run() }()

	require.NoError(t, srv.WaitForReady(2*time.Second))

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown())
}
