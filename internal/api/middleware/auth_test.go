package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/api/middleware"
	"github.com/deskhub/deskhub/internal/auth"
)

const testSecret = "middleware-test-secret"

func newTokens(t *testing.T, ttl time.Duration) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens(testSecret, ttl)
	require.NoError(t, err)
	return tokens
}

// identityCapture records the identity the wrapped handler observed.
func identityCapture(captured **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func parseGraphQLErrors(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)

	rawErrs, ok := body["errors"].([]interface{})
	require.True(t, ok, "response should carry an errors array")

	errs := make([]map[string]interface{}, 0, len(rawErrs))
	for _, e := range rawErrs {
		errs = append(errs, e.(map[string]interface{}))
	}
	return errs
}

func TestAuth_NoHeaderIsAnonymous(t *testing.T) {
	tokens := newTokens(t, time.Hour)

	var captured *auth.Identity
	handler := middleware.Auth(tokens)(identityCapture(&captured))
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, captured, "anonymous request should carry no identity")
}

func TestAuth_MalformedSchemeIsAnonymous(t *testing.T) {
	tokens := newTokens(t, time.Hour)

	var captured *auth.Identity
	handler := middleware.Auth(tokens)(identityCapture(&captured))
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, captured)
}

func TestAuth_ValidToken_IdentityInContext(t *testing.T) {
	tokens := newTokens(t, time.Hour)
	userID := uuid.New()

	raw, err := tokens.Issue(userID, auth.RoleAgent)
	require.NoError(t, err)

	var captured *auth.Identity
	handler := middleware.Auth(tokens)(identityCapture(&captured))
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, auth.RoleAgent, captured.Role)
}

func TestAuth_LowercaseBearerScheme(t *testing.T) {
	tokens := newTokens(t, time.Hour)

	raw, err := tokens.Issue(uuid.New(), auth.RoleClient)
	require.NoError(t, err)

	var captured *auth.Identity
	handler := middleware.Auth(tokens)(identityCapture(&captured))
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "bearer "+raw)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, captured)
}

func TestAuth_InvalidTokenRejectsRequest(t *testing.T) {
	tokens := newTokens(t, time.Hour)

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	handler := middleware.Auth(tokens)(next)
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerCalled, "a present-but-invalid token must be fatal to the request")

	errs := parseGraphQLErrors(t, w)
	require.Len(t, errs, 1)
	extensions := errs[0]["extensions"].(map[string]interface{})
	assert.Equal(t, "UNAUTHENTICATED", extensions["code"])
}

func TestAuth_ExpiredTokenRejectsRequest(t *testing.T) {
	expired := newTokens(t, -time.Minute)
	raw, err := expired.Issue(uuid.New(), auth.RoleClient)
	require.NoError(t, err)

	handler := middleware.Auth(expired)(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	errs := parseGraphQLErrors(t, w)
	require.Len(t, errs, 1)
	extensions := errs[0]["extensions"].(map[string]interface{})
	assert.Equal(t, "UNAUTHENTICATED", extensions["code"])
}

func TestAuth_TokenSignedWithOtherSecret(t *testing.T) {
	tokens := newTokens(t, time.Hour)

	other, err := auth.NewTokens("a-completely-different-secret", time.Hour)
	require.NoError(t, err)
	raw, err := other.Issue(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)

	handler := middleware.Auth(tokens)(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
