package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/wandermatch-backend/internal/common/utils"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, got *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		*got = userID
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	m := NewMiddleware(testSecret)
	token, err := utils.GenerateJWT(7, "wanderer", "access", time.Hour, testSecret)
	require.NoError(t, err)

	var got int64
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	m.Authenticate(protectedEcho(t, &got)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), got)
}

func TestAuthenticateRejects(t *testing.T) {
	m := NewMiddleware(testSecret)
	refresh, err := utils.GenerateJWT(7, "wanderer", "refresh", time.Hour, testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"refresh token", "Bearer " + refresh},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAuthenticateQueryTokenFallback(t *testing.T) {
	m := NewMiddleware(testSecret)
	token, err := utils.GenerateJWT(9, "wanderer", "access", time.Hour, testSecret)
	require.NoError(t, err)

	var got int64
	req := httptest.NewRequest("GET", "/ws?token="+token, nil)
	rr := httptest.NewRecorder()

	m.Authenticate(protectedEcho(t, &got)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(9), got)
}

func TestOptionalAuthenticate(t *testing.T) {
	m := NewMiddleware(testSecret)

	var sawUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawUser = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// No token: passes through without user context
	req := httptest.NewRequest("GET", "/feed", nil)
	rr := httptest.NewRecorder()
	m.OptionalAuthenticate(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, sawUser)

	// Valid token: user context is attached
	token, err := utils.GenerateJWT(5, "wanderer", "access", time.Hour, testSecret)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	m.OptionalAuthenticate(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, sawUser)
}
