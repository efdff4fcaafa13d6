package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/logger"
	"github.com/utafrali/EcommerceGo/storefront/pkg/middleware"
)

type sessionKey struct{}

// requestSession is what the session middleware learned about the caller.
type requestSession struct {
	guestToken   string
	sessionToken string
	user         *domain.User
}

func sessionFrom(ctx context.Context) *requestSession {
	if s, ok := ctx.Value(sessionKey{}).(*requestSession); ok {
		return s
	}
	return &requestSession{}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Session resolves the guest and session tokens of the request into its
// context. A session cookie wins over a bearer token. An unresolvable
// session leaves the request anonymous.
func Session(accounts Accounts) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s := &requestSession{
				guestToken:   cookieValue(r, GuestCookieName),
				sessionToken: cookieValue(r, SessionCookieName),
			}
			if s.sessionToken == "" {
				s.sessionToken = bearerToken(r)
			}

			if s.sessionToken != "" {
				s.user = accounts.CurrentUser(ctx, s.sessionToken)
			}
			if s.user != nil {
				ctx = middleware.WithUserID(ctx, s.user.ID)
			}
			if s.guestToken != "" {
				ctx = logger.WithGuestToken(ctx, s.guestToken)
			}

			ctx = context.WithValue(ctx, sessionKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
