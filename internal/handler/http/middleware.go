package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/devHenao/ventasPro/internal/store"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/logger"
)

// ContentTypeJSON rejects bodies that declare a content type other than JSON.
// Requests without a Content-Type header are accepted.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}


// SessionUser tags the request context and its scoped logger with the
// signed-in administrator. Anonymous requests pass through unchanged.
func SessionUser(sf *store.Storefront) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string
			sf.With(func() {
				if s, ok := sf.Session.Current(); ok {
					userID = s.User.ID
				}
			})
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := logger.WithUserID(r.Context(), userID)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("user_id", userID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
