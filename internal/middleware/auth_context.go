package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-boarding/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Headers del modo dev (sin verifier).
const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugUsername = "X-Debug-Username"
	HeaderDebugRole     = "X-Debug-Role"
)

// AuthContext:
// - verifier != nil y viene Bearer token => Verify() y setea claims.
// - verifier == nil => modo dev: X-Debug-User-ID (+ X-Debug-Username, X-Debug-Role).
// - Sin claims el request sigue; cada handler decide si exige auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{
					UserID:   uid,
					Username: strings.TrimSpace(r.Header.Get(HeaderDebugUsername)),
					Role:     strings.TrimSpace(r.Header.Get(HeaderDebugRole)),
				}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// token inválido = anónimo; el handler responde 401
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
