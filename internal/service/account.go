package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// AccountService signs customers in and out on top of an auth.Provider.
type AccountService struct {
	provider auth.Provider
	guests   *GuestService
	producer *event.Producer
	logger   *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(provider auth.Provider, guests *GuestService, producer *event.Producer, logger *slog.Logger) *AccountService {
	return &AccountService{
		provider: provider,
		guests:   guests,
		producer: producer,
		logger:   logger,
	}
}

// SignUp registers a credential account, opens a session and absorbs the
// guest session carried by guestToken.
func (s *AccountService) SignUp(ctx context.Context, in auth.SignUpInput, guestToken string) (*auth.Result, error) {
	res, err := s.provider.SignUp(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, res.User); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", res.User.ID),
			slog.String("error", err.Error()),
		)
	}
	s.mergeGuest(ctx, guestToken, res.User.ID)

	s.logger.InfoContext(ctx, "user signed up", slog.String("user_id", res.User.ID))
	return res, nil
}

// SignIn opens a session for valid credentials and absorbs the guest
// session carried by guestToken.
func (s *AccountService) SignIn(ctx context.Context, in auth.SignInInput, guestToken string) (*auth.Result, error) {
	res, err := s.provider.SignIn(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	s.mergeGuest(ctx, guestToken, res.User.ID)

	s.logger.InfoContext(ctx, "user signed in", slog.String("user_id", res.User.ID))
	return res, nil
}

// A failed merge leaves a guest row to expire on its own; the sign-in
// itself has succeeded.
func (s *AccountService) mergeGuest(ctx context.Context, guestToken, userID string) {
	if err := s.guests.Merge(ctx, guestToken, userID); err != nil {
		s.logger.WarnContext(ctx, "guest session merge failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

// SignOut revokes the session behind token.
func (s *AccountService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.provider.SignOut(ctx, token); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentUser resolves token to its user. It never fails: provider errors
// are logged and reported as "no current user".
func (s *AccountService) CurrentUser(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}
	res, err := s.provider.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			s.logger.ErrorContext(ctx, "session lookup failed", slog.String("error", err.Error()))
		}
		return nil
	}
	return res.User
}
