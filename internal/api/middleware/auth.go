package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/deskhub/deskhub/internal/auth"
	"github.com/deskhub/deskhub/internal/graph"
)

// Auth resolves the request identity once per request. A missing or
// malformed Authorization header leaves the request anonymous — public
// operations remain reachable. A present-but-invalid bearer token is fatal:
// the request is rejected before any resolver runs.
func Auth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				requestID := GetRequestID(r.Context())
				slog.Debug("rejected invalid bearer token", "requestId", requestID)
				graph.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthenticated", requestID)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other shape yields the empty string.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return ""
	}
	return parts[1]
}
