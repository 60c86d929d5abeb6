package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"reqwise/pkg/identity"
)

// BearerAuthenticator is middleware that resolves bearer tokens to users
type BearerAuthenticator struct {
	Resolver *identity.Resolver
}

// NewBearerAuthenticator creates a new bearer token authenticator middleware
func NewBearerAuthenticator(resolver *identity.Resolver) *BearerAuthenticator {
	return &BearerAuthenticator{Resolver: resolver}
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// places the resolved user on the request context. All failure modes
// collapse into the same 401 so callers learn nothing about which stage
// rejected them.
func (b *BearerAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthenticated(w)
			return
		}

		user, err := b.Resolver.Resolve(token)
		if err != nil {
			unauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), user)))
	})
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(authHeader string) (string, bool) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": "Not authenticated"})
}
