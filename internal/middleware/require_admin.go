package middleware

import (
	"net/http"
	"strings"
)

// RequireAdmin corta con 401 si no hay usuario y 403 si el rol no es administrativo.
func RequireAdmin(adminRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !claims.IsAdmin(adminRoles) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
