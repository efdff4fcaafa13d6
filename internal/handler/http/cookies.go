package http

import (
	"net/http"
	"time"
)

// Cookie names.
const (
	GuestCookieName   = "guest_session"
	SessionCookieName = "session_token"
)

// CookieConfig controls the cookies the API sets. Secure is switched off
// only for plain-HTTP local development.
type CookieConfig struct {
	Secure     bool
	GuestTTL   time.Duration
	SessionTTL time.Duration
}

func (c CookieConfig) setGuest(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.GuestTTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) clearGuest(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) setSession(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(c.SessionTTL / time.Second)
	if !expiresAt.IsZero() {
		if left := int(time.Until(expiresAt) / time.Second); left > 0 {
			maxAge = left
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
