package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ectopass/vault/internal/crypto"
)

type contextKey string

const ownerIDKey contextKey = "ownerID"

// Auth returns middleware that resolves the owner identity from the
// Authorization header and stores it in the request context. Requests without
// a resolvable identity never reach the handler.
func Auth(resolver *crypto.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			ownerID, err := resolver.Resolve(authHeader)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerIDFromContext extracts the authenticated owner id from the request context.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDKey).(string)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
