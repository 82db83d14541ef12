package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"PATHFINDER_BACK-END/internal/config"
	"PATHFINDER_BACK-END/internal/handlers"
	"PATHFINDER_BACK-END/internal/middleware"
	"PATHFINDER_BACK-END/internal/routes"
)

// testAPI drives the real router plus middleware over in-memory stores.
type testAPI struct {
	t      *testing.T
	router chi.Router
	state  *memState

	csrfCookie *http.Cookie
	csrfToken  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	state := newMemState()
	users := &memUsers{s: state}
	posts := &memPosts{s: state}
	reviews := &memReviews{s: state}
	revoker := &memRevoker{s: state}

	cfg := &config.Config{
		Session: config.SessionConfig{
			Secret:     "test-session-secret",
			TTL:        time.Hour,
			CookieName: "token",
		},
		Env:         "test",
		FrontendURL: "http://localhost:3000",
	}

	router := routes.New(routes.Handlers{
		Users:   handlers.NewUsersHandler(users, &cfg.Session),
		Session: handlers.NewSessionHandler(users, revoker, &cfg.Session),
		Posts:   handlers.NewPostsHandler(posts),
		Reviews: handlers.NewReviewsHandler(posts, reviews),
		Health:  handlers.NewHealthHandler(nil, nil),
		Google:  handlers.NewGoogleAuthHandler(users, cfg),
	}, cfg, revoker)

	api := &testAPI{t: t, router: router, state: state}
	api.restoreCSRF()
	return api
}

func (a *testAPI) restoreCSRF() {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/api/csrf/restore", nil, nil)
	require.Equal(a.t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			a.csrfCookie = c
		}
	}
	require.NotNil(a.t, a.csrfCookie, "csrf cookie not set")

	var body struct {
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &body))
	a.csrfToken = body.CSRFToken
}

// do sends a request through the router. Non-GET requests get the CSRF
// cookie/header pair attached automatically.
func (a *testAPI) do(method, path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet && a.csrfCookie != nil {
		req.AddCookie(a.csrfCookie)
		req.Header.Set(middleware.CSRFHeaderName, a.csrfToken)
	}
	if session != nil {
		req.AddCookie(session)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns the session cookie the server set.
func (a *testAPI) signup(username, email, password string) *http.Cookie {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/users", map[string]any{
		"username":  username,
		"email":     email,
		"password":  password,
		"firstName": "Test",
		"lastName":  "User",
	}, nil)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	return sessionCookie(a.t, rec)
}

// createTrip creates a planned trip with the given stops and returns the
// decoded response body.
func (a *testAPI) createTrip(session *http.Cookie, body map[string]any) map[string]any {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/posts", body, session)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(a.t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
