package domain

import (
	"time"
)

// CredentialProvider is the accounts.provider_id of email/password logins.
const CredentialProvider = "credential"

// User is a registered customer.
type User struct {
	ID            string    `json:"id"`
	Name          *string   `json:"name,omitempty"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Image         *string   `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Account links a user to a login method. Password holds a bcrypt hash for
// credential accounts.
type Account struct {
	ID         string
	UserID     string
	AccountID  string
	ProviderID string
	Password   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Session is a signed-in browser. Its ID is the jti of the session token.
type Session struct {
	ID        string
	UserID    string
	IPAddress *string
	UserAgent *string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Guest is an anonymous visitor identified by the guest_session cookie.
type Guest struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the guest row is past its expiry at now.
func (g *Guest) Expired(now time.Time) bool {
	return g.ExpiresAt.Before(now)
}
