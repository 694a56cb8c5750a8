package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl marks successful GET responses as publicly cacheable for maxAge
// seconds.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	return header("Cache-Control", value)
}

// NoStore marks responses as uncacheable. Used on per-visitor state.
func NoStore(next http.Handler) http.Handler {
	return header("Cache-Control", "no-store")(next)
}

func header(name, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
