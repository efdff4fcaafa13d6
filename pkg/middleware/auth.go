package middleware

import (
	"context"
	"net/http"

	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID marks the request as authenticated. Session resolution lives
// with the auth handlers; this package only carries the result.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "sign in required"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
