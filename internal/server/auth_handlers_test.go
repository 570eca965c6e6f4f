package server

import (
	"net/http"
	"testing"

	"newsdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     "Dana Reyes",
		"email":    "dana@example.com",
		"password": "StrongPass12!!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	signup := decodeBody[map[string]any](t, resp)
	assert.NotEmpty(t, signup["token"])

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "StrongPass12!!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody[map[string]any](t, resp)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	// The issued token grants access to protected routes.
	resp = doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[models.User](t, resp)
	assert.Equal(t, "dana@example.com", me.Email)
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing fields", map[string]any{"name": "X Y"}},
		{"weak password", map[string]any{"name": "X Y", "email": "x@example.com", "password": "short"}},
		{"bad email", map[string]any{"name": "X Y", "email": "nope", "password": "StrongPass12!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	body := map[string]any{
		"name":     "Dana Reyes",
		"email":    "dupe@example.com",
		"password": "StrongPass12!!",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
