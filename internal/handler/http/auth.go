package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/middleware"
	"github.com/utafrali/EcommerceGo/storefront/pkg/validator"
)

// AuthHandler handles the sign-in, sign-up and session endpoints.
type AuthHandler struct {
	accounts Accounts
	cookies  CookieConfig
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(accounts Accounts, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookies: cookies, logger: logger}
}

// SignUpRequest is the JSON body of a registration.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"max=100"`
}

// SignInRequest is the JSON body of a sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// SessionResponse is returned after a successful sign-in or sign-up. The
// token is also set as a cookie; API clients may send it as a bearer token.
type SessionResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func (h *AuthHandler) established(w http.ResponseWriter, r *http.Request, status int, res *auth.Result) {
	h.cookies.setSession(w, res.Token, res.ExpiresAt)
	if sessionFrom(r.Context()).guestToken != "" {
		h.cookies.clearGuest(w)
	}

	out := SessionResponse{User: res.User, Token: res.Token}
	if !res.ExpiresAt.IsZero() {
		out.ExpiresAt = &res.ExpiresAt
	}
	httputil.WriteData(w, status, out)
}

// SignUp handles POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)

	var req SignUpRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := h.accounts.SignUp(r.Context(), auth.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}, sessionFrom(r.Context()).guestToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.established(w, r, http.StatusCreated, res)
}

// SignIn handles POST /api/v1/auth/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)

	var req SignInRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := h.accounts.SignIn(r.Context(), auth.SignInInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}, sessionFrom(r.Context()).guestToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.established(w, r, http.StatusOK, res)
}

// SignOut handles POST /api/v1/auth/sign-out. The cookie is cleared even
// when revoking the session fails.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.cookies.clearSession(w)
	if err := h.accounts.SignOut(r.Context(), sessionFrom(r.Context()).sessionToken); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me. Anonymous callers get a null user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, sessionFrom(r.Context()).user)
}
