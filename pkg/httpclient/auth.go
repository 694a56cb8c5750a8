package httpclient

import "context"

type bearerKey struct{}

// WithBearerToken returns a context whose requests carry token in the
// Authorization header.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerTokenFromContext returns the token set by WithBearerToken.
func BearerTokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(bearerKey{}).(string); ok {
		return v
	}
	return ""
}
