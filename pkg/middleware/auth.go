package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/httputil"
)

type contextKeyType string

const tokenKey contextKeyType = "bearer_token"

// BearerToken copies the Authorization bearer token, when present, into the
// request context. Malformed headers are rejected; absent ones are not.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("invalid authorization header format"), nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), token)))
	})
}

// WithToken stores a bearer token in ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by BearerToken.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
