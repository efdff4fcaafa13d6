package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "storefront"

// Claims are the session token claims. Subject is the user id and ID (jti)
// is the session row id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and parses session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager signing with HS256.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL is the lifetime given to new sessions.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for the given session expiring at expiresAt.
func (m *TokenManager) Issue(userID, sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, issuer and expiry and returns the claims.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	return m.parse(token)
}

// ParseUnverifiedExpiry is Parse without the expiry check. Sign-out uses it
// so an expired token can still revoke its session row.
func (m *TokenManager) ParseUnverifiedExpiry(token string) (*Claims, error) {
	return m.parse(token, jwt.WithoutClaimsValidation())
}

func (m *TokenManager) parse(token string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token claims")
	}
	return claims, nil
}
