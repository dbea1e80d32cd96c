// Package middleware provides HTTP middleware: bearer-token
// authentication, request logging, and Prometheus metrics.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"communitycash/internal/auth"
)

// identityKey is an unexported context key type to avoid collisions.
type identityKey struct{}

// WithIdentity stores the verified caller identity in the context.
func WithIdentity(ctx context.Context, ident auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext extracts the caller identity set by RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(auth.Identity)
	return ident, ok
}

// RequireAuth returns middleware that gates every protected route behind
// token verification. It rejects missing or malformed bearer
// credentials, tokens that fail verification, and refresh tokens used in
// place of access tokens. On success the identity from the claims is the
// sole source of caller identity for the rest of the request.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				unauthorized(w)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}
			if claims.TokenType != auth.TokenTypeAccess {
				unauthorized(w)
				return
			}

			ident := auth.Identity{
				MemberID:    claims.MemberID,
				CommunityID: claims.CommunityID,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
