// Package middleware provides HTTP middleware for authentication,
// request identification, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"courtside/internal/domain"
)

// PrincipalResolver turns a bearer token into an authenticated principal.
// Implemented by token.Manager.
type PrincipalResolver interface {
	Resolve(ctx context.Context, tokenString string) (domain.ContextPrincipal, error)
}

// PublicMatcher reports whether a path bypasses authentication entirely.
// Implemented by rbac.Gate. Evaluated before any token inspection so
// unauthenticated users can still reach sign-in entry points.
type PublicMatcher interface {
	IsPublic(path string) bool
}

// Auth resolves the bearer token into a principal stored in the request
// context. Requests to public paths pass through untouched. Everything else
// without a valid token gets 401; role checks happen later, in the services,
// and yield 403.
func Auth(resolver PrincipalResolver, public PublicMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public != nil && public.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "provide a bearer session token")
				return
			}

			principal, err := resolver.Resolve(r.Context(), strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				writeUnauthorized(w, "invalid or expired session token")
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    401,
		"message": "unauthorized: " + message,
	})
}
