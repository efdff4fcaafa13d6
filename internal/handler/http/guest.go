package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
)

// GuestHandler handles the guest session endpoints.
type GuestHandler struct {
	guests  Guests
	cookies CookieConfig
	logger  *slog.Logger
}

// NewGuestHandler creates a new guest session HTTP handler.
func NewGuestHandler(guests Guests, cookies CookieConfig, logger *slog.Logger) *GuestHandler {
	return &GuestHandler{guests: guests, cookies: cookies, logger: logger}
}

// GuestResponse describes a guest session without exposing its token.
type GuestResponse struct {
	Active    bool       `json:"active"`
	Created   bool       `json:"created,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Ensure handles POST /api/v1/guest-session
func (h *GuestHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	guest, created, err := h.guests.Ensure(r.Context(), sessionFrom(r.Context()).guestToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out := GuestResponse{Active: true, Created: created}
	status := http.StatusOK
	if created {
		h.cookies.setGuest(w, guest.SessionToken)
		out.ExpiresAt = &guest.ExpiresAt
		status = http.StatusCreated
	}
	httputil.WriteData(w, status, out)
}

// Lookup handles GET /api/v1/guest-session. An expired or vanished session
// clears the cookie and reads as inactive.
func (h *GuestHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	guest, stale, err := h.guests.Lookup(r.Context(), sessionFrom(r.Context()).guestToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if stale {
		h.cookies.clearGuest(w)
	}
	if guest == nil {
		httputil.WriteData(w, http.StatusOK, GuestResponse{})
		return
	}
	httputil.WriteData(w, http.StatusOK, GuestResponse{Active: true, ExpiresAt: &guest.ExpiresAt})
}
