package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// DefaultBcryptCost is the bcrypt cost used for credential passwords.
const DefaultBcryptCost = 12

var errInvalidCredentials = apperrors.Unauthorized("invalid email or password")

// LocalProvider authenticates against the users, accounts and sessions
// tables.
type LocalProvider struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tokens     *TokenManager
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
	compare    func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

// NewLocalProvider creates a provider backed by the storefront database.
func NewLocalProvider(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *TokenManager,
	bcryptCost int,
	logger *slog.Logger,
) *LocalProvider {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &LocalProvider{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		compare:    bcrypt.CompareHashAndPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalProvider) SignUp(ctx context.Context, in SignUpInput) (*Result, error) {
	email := normalizeEmail(in.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := p.now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = &name
	}
	hashed := string(hash)
	account := &domain.Account{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		AccountID:  email,
		ProviderID: domain.CredentialProvider,
		Password:   &hashed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := p.users.CreateWithAccount(ctx, user, account); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return p.startSession(ctx, user, in.IPAddress, in.UserAgent)
}

func (p *LocalProvider) SignIn(ctx context.Context, in SignInInput) (*Result, error) {
	user, account, err := p.users.FindCredential(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			p.burnCompare(in.Password)
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if account.Password == nil {
		p.burnCompare(in.Password)
		return nil, errInvalidCredentials
	}
	if err := p.compare([]byte(*account.Password), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	return p.startSession(ctx, user, in.IPAddress, in.UserAgent)
}

// burnCompare spends one bcrypt comparison at the provider's cost so a
// missing account answers in the same time as a wrong password.
func (p *LocalProvider) burnCompare(password string) {
	p.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("storefront-dummy-password"), p.bcryptCost)
		if err != nil {
			p.logger.Error("failed to build dummy password hash", slog.String("error", err.Error()))
			return
		}
		p.dummyHash = h
	})
	if p.dummyHash != nil {
		_ = p.compare(p.dummyHash, []byte(password))
	}
}

func (p *LocalProvider) startSession(ctx context.Context, user *domain.User, ip, ua string) (*Result, error) {
	now := p.now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(p.tokens.TTL()),
		CreatedAt: now,
	}
	if ip != "" {
		session.IPAddress = &ip
	}
	if ua != "" {
		session.UserAgent = &ua
	}
	if err := p.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := p.tokens.Issue(user.ID, session.ID, now, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// GetSession resolves a token to its live session. Expired rows are
// removed as they are found.
func (p *LocalProvider) GetSession(ctx context.Context, token string) (*Result, error) {
	claims, err := p.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid session token")
	}

	session, err := p.sessions.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("session revoked")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != claims.Subject {
		return nil, apperrors.Unauthorized("invalid session token")
	}
	if !session.ExpiresAt.After(p.now()) {
		if err := p.sessions.Delete(ctx, session.ID); err != nil {
			p.logger.WarnContext(ctx, "failed to delete expired session",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil, apperrors.Unauthorized("session expired")
	}

	user, err := p.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("session user no longer exists")
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}
	return &Result{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// SignOut revokes the session behind token. Unparseable tokens have no
// session to revoke and are ignored.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.tokens.ParseUnverifiedExpiry(token)
	if err != nil {
		return nil
	}
	if err := p.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
