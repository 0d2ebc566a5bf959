// ABOUTME: API-key authentication middleware resolving the client identity
// ABOUTME: Keys follow the pattern sk_{client_id}_{secret}; no key, no pipeline
package server

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// APIKeyHeader carries the caller's key
const APIKeyHeader = "X-API-Key"

// ParseAPIKey extracts the client identifier from an API key of the
// form sk_{client_id}_{secret}. A production deployment would look the
// key up in a database; this validates the shape and trusts the
// embedded client id.
func ParseAPIKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "sk_") {
		return "", false
	}
	parts := strings.Split(key, "_")
	if len(parts) < 3 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// authMiddleware rejects unauthenticated or malformed callers before
// the orchestrator is ever reachable
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			writeError(w, http.StatusUnauthorized, "missing "+APIKeyHeader+" header")
			return
		}

		clientID, ok := ParseAPIKey(key)
		if !ok {
			writeError(w, http.StatusForbidden, "invalid API key")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientFromContext returns the resolved client identifier
func clientFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}
