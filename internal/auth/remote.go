package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httpclient"
)

// JSONDoer is the part of httpclient.BreakerClient the remote provider uses.
type JSONDoer interface {
	DoJSON(ctx context.Context, method, url string, header http.Header, in, out any) error
}

// RemoteProvider delegates to an external auth service speaking the
// /api/auth/* email endpoints.
type RemoteProvider struct {
	client  JSONDoer
	baseURL string
}

// NewRemoteProvider creates a provider calling baseURL through client.
func NewRemoteProvider(client JSONDoer, baseURL string) *RemoteProvider {
	return &RemoteProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type remoteUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (u remoteUser) toDomain() *domain.User {
	user := &domain.User{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.Name != "" {
		name := u.Name
		user.Name = &name
	}
	return user
}

type remoteSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type remoteAuthResponse struct {
	Token   string         `json:"token"`
	User    remoteUser     `json:"user"`
	Session *remoteSession `json:"session"`
}

func (r remoteAuthResponse) result(fallbackToken string) (*Result, error) {
	if r.User.ID == "" {
		return nil, apperrors.Unauthorized("no session")
	}
	res := &Result{User: r.User.toDomain(), Token: r.Token}
	if r.Session != nil {
		if r.Session.Token != "" {
			res.Token = r.Session.Token
		}
		res.ExpiresAt = r.Session.ExpiresAt
	}
	if res.Token == "" {
		res.Token = fallbackToken
	}
	return res, nil
}

func forwarded(ip, ua string) http.Header {
	h := http.Header{}
	if ip != "" {
		h.Set("X-Forwarded-For", ip)
	}
	if ua != "" {
		h.Set("User-Agent", ua)
	}
	return h
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func (p *RemoteProvider) SignUp(ctx context.Context, in SignUpInput) (*Result, error) {
	body := map[string]string{"email": in.Email, "password": in.Password, "name": in.Name}
	var resp remoteAuthResponse
	if err := p.client.DoJSON(ctx, http.MethodPost, p.baseURL+"/api/auth/sign-up/email",
		forwarded(in.IPAddress, in.UserAgent), body, &resp); err != nil {
		return nil, fmt.Errorf("remote sign-up: %w", err)
	}
	return resp.result("")
}

func (p *RemoteProvider) SignIn(ctx context.Context, in SignInInput) (*Result, error) {
	body := map[string]string{"email": in.Email, "password": in.Password}
	var resp remoteAuthResponse
	if err := p.client.DoJSON(ctx, http.MethodPost, p.baseURL+"/api/auth/sign-in/email",
		forwarded(in.IPAddress, in.UserAgent), body, &resp); err != nil {
		return nil, fmt.Errorf("remote sign-in: %w", err)
	}
	return resp.result("")
}

// GetSession maps a remote "not found" to ErrUnauthorized like the local
// provider does for unknown sessions.
func (p *RemoteProvider) GetSession(ctx context.Context, token string) (*Result, error) {
	var resp *remoteAuthResponse
	if err := p.client.DoJSON(ctx, http.MethodGet, p.baseURL+"/api/auth/get-session",
		bearer(token), nil, &resp); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("no session")
		}
		return nil, fmt.Errorf("remote get-session: %w", err)
	}
	if resp == nil {
		return nil, apperrors.Unauthorized("no session")
	}
	return resp.result(token)
}

func (p *RemoteProvider) SignOut(ctx context.Context, token string) error {
	if err := p.client.DoJSON(ctx, http.MethodPost, p.baseURL+"/api/auth/sign-out",
		bearer(token), map[string]string{}, nil); err != nil {
		return fmt.Errorf("remote sign-out: %w", err)
	}
	return nil
}

var _ JSONDoer = (*httpclient.BreakerClient)(nil)
