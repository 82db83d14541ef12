package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupCreatesSession(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/users", map[string]any{
		"username":  "wanderer",
		"email":     "wanderer@example.com",
		"password":  "hunter22",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "response missing user object")
	assert.Equal(t, "wanderer", user["username"])
	assert.Equal(t, "wanderer@example.com", user["email"])
	assert.NotEmpty(t, user["id"])

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	// The stored credential must be a bcrypt hash, never the plaintext.
	for _, u := range api.state.users {
		assert.NotEqual(t, "hunter22", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.signup("firstuser", "taken@example.com", "password1")

	rec := api.do(http.MethodPost, "/api/users", map[string]any{
		"username":  "seconduser",
		"email":     "taken@example.com",
		"password":  "password2",
		"firstName": "Someone",
		"lastName":  "Else",
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, rec.Body.String(), "User with that email already exists")
	assert.Equal(t, "Validation Error", body["title"])
}

func TestSignupDuplicateUsername(t *testing.T) {
	api := newTestAPI(t)
	api.signup("takenname", "one@example.com", "password1")

	rec := api.do(http.MethodPost, "/api/users", map[string]any{
		"username":  "takenname",
		"email":     "two@example.com",
		"password":  "password2",
		"firstName": "Someone",
		"lastName":  "Else",
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User with that username already exists")
}

func TestSignupValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{
			name: "invalid email",
			payload: map[string]any{
				"username": "validname", "email": "not-an-email",
				"password": "password1", "firstName": "A", "lastName": "B",
			},
			message: "Please provide a valid email",
		},
		{
			name: "username too short",
			payload: map[string]any{
				"username": "abc", "email": "a@example.com",
				"password": "password1", "firstName": "A", "lastName": "B",
			},
			message: "Please provide a username between 4 and 30 characters",
		},
		{
			name: "username is an email",
			payload: map[string]any{
				"username": "user@example.com", "email": "a@example.com",
				"password": "password1", "firstName": "A", "lastName": "B",
			},
			message: "Username cannot be an email",
		},
		{
			name: "password too short",
			payload: map[string]any{
				"username": "validname", "email": "a@example.com",
				"password": "short", "firstName": "A", "lastName": "B",
			},
			message: "Password must be between 6 and 50 characters",
		},
		{
			name: "missing first name",
			payload: map[string]any{
				"username": "validname", "email": "a@example.com",
				"password": "password1", "firstName": "", "lastName": "B",
			},
			message: "First name is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/users", tc.payload, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestGetUserPublicProfile(t *testing.T) {
	api := newTestAPI(t)
	api.signup("profileuser", "profile@example.com", "password1")

	var id string
	for _, u := range api.state.users {
		id = u.ID.String()
	}

	rec := api.do(http.MethodGet, "/api/users/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "profileuser", user["username"])
	_, hasEmail := user["email"]
	assert.False(t, hasEmail, "public profile must not expose email")
}

func TestGetUserNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/users/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")

	rec = api.do(http.MethodGet, "/api/users/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
