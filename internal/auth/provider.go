// Package auth authenticates storefront customers. The Provider interface
// hides whether credentials are checked locally or by a remote auth
// service.
package auth

import (
	"context"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// SignUpInput carries a new credential registration.
type SignUpInput struct {
	Email     string
	Password  string
	Name      string
	IPAddress string
	UserAgent string
}

// SignInInput carries an email/password sign-in attempt.
type SignInInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// Result is an established session.
type Result struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Provider authenticates users and manages their sessions.
//
// SignIn and SignUp failures carry apperrors codes: invalid credentials are
// ErrUnauthorized and a taken email is ErrAlreadyExists. GetSession reports
// an unknown, expired or malformed token as ErrUnauthorized.
type Provider interface {
	SignUp(ctx context.Context, in SignUpInput) (*Result, error)
	SignIn(ctx context.Context, in SignInInput) (*Result, error)
	GetSession(ctx context.Context, token string) (*Result, error)
	SignOut(ctx context.Context, token string) error
}
