package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// DefaultGuestTTL is how long an anonymous session lives.
const DefaultGuestTTL = 7 * 24 * time.Hour

// GuestService manages anonymous shopper sessions.
type GuestService struct {
	guests   repository.GuestRepository
	producer *event.Producer
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewGuestService creates a guest session service.
func NewGuestService(guests repository.GuestRepository, producer *event.Producer, ttl time.Duration, logger *slog.Logger) *GuestService {
	if ttl <= 0 {
		ttl = DefaultGuestTTL
	}
	return &GuestService{
		guests:   guests,
		producer: producer,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// TTL is the lifetime of new guest sessions.
func (s *GuestService) TTL() time.Duration { return s.ttl }

// Ensure returns the session for token, creating one when the request
// carries none. A carried token is reused as is; created reports whether a
// new row was written and the cookie must be set.
func (s *GuestService) Ensure(ctx context.Context, token string) (guest *domain.Guest, created bool, err error) {
	if token != "" {
		return &domain.Guest{SessionToken: token}, false, nil
	}

	now := s.now()
	guest = &domain.Guest{
		ID:           uuid.New().String(),
		SessionToken: uuid.New().String(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, false, fmt.Errorf("create guest session: %w", err)
	}

	s.logger.DebugContext(ctx, "guest session created", slog.String("guest_id", guest.ID))
	return guest, true, nil
}

// Lookup resolves token to a live guest session. An expired row is deleted
// on sight. Deleting nothing is fine: a concurrent lookup got there first.
// stale reports a token with no live row behind it, expired or already
// gone, so the cookie can be cleared.
func (s *GuestService) Lookup(ctx context.Context, token string) (guest *domain.Guest, stale bool, err error) {
	if token == "" {
		return nil, false, nil
	}

	n, err := s.guests.DeleteExpired(ctx, token, s.now())
	if err != nil {
		return nil, false, fmt.Errorf("delete expired guest: %w", err)
	}
	if n > 0 {
		return nil, true, nil
	}

	guest, err = s.guests.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("get guest: %w", err)
	}
	// Expired between the delete and the read.
	if guest.Expired(s.now()) {
		return nil, true, nil
	}
	return guest, false, nil
}

// Merge hands the guest session over to a signed-in user by deleting it.
func (s *GuestService) Merge(ctx context.Context, token, userID string) error {
	if token == "" {
		return nil
	}

	guest, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get guest: %w", err)
	}
	if _, err := s.guests.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}

	if err := s.producer.PublishGuestMerged(ctx, guest.ID, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish guest.merged event",
			slog.String("guest_id", guest.ID),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "guest session merged",
		slog.String("guest_id", guest.ID),
		slog.String("user_id", userID),
	)
	return nil
}
