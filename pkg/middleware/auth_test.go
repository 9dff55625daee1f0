package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authChain(t *testing.T, secret string) (http.Handler, *uuid.UUID) {
	t.Helper()

	var gotUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	return Auth(utils.JWTConfig{Secret: secret}, zap.NewNop())(next), &gotUserID
}

func TestAuthMissingHeader(t *testing.T) {
	handler, _ := authChain(t, "secret")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	handler, _ := authChain(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	handler, _ := authChain(t, "secret")

	token, err := utils.NewAccessToken("other-secret", uuid.New(), "customer", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidTokenPassesClaims(t *testing.T) {
	handler, gotUserID := authChain(t, "secret")
	userID := uuid.New()

	token, err := utils.NewAccessToken("secret", userID, "customer", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *gotUserID)
}

func TestAdminGate(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Admin(zap.NewNop())(next)

	// No auth context at all.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated customer.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "customer"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin gets through.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "admin"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
