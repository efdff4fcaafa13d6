package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

const (
	insertGuestQuery = `
		INSERT INTO guests (id, session_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`

	getGuestQuery = `
		SELECT id, session_token, created_at, expires_at
		FROM guests
		WHERE session_token = $1`

	deleteExpiredGuestQuery = `DELETE FROM guests WHERE session_token = $1 AND expires_at < $2`

	deleteGuestQuery = `DELETE FROM guests WHERE session_token = $1`
)

// GuestRepository implements guest session persistence using PostgreSQL.
type GuestRepository struct {
	pool database.DBTX
}

// NewGuestRepository creates a new PostgreSQL-backed guest repository.
func NewGuestRepository(pool database.DBTX) *GuestRepository {
	return &GuestRepository{pool: pool}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) (err error) {
	ctx, end := database.TraceQuery(ctx, "guests.Create", insertGuestQuery)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, insertGuestQuery, g.ID, g.SessionToken, g.CreatedAt, g.ExpiresAt); err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.Conflict("guest session token already in use")
		}
		return fmt.Errorf("insert guest: %w", err)
	}
	return nil
}

func (r *GuestRepository) GetByToken(ctx context.Context, token string) (_ *domain.Guest, err error) {
	ctx, end := database.TraceQuery(ctx, "guests.GetByToken", getGuestQuery)
	defer func() { end(err) }()

	var g domain.Guest
	err = r.pool.QueryRow(ctx, getGuestQuery, token).Scan(&g.ID, &g.SessionToken, &g.CreatedAt, &g.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("guest", "session")
		}
		return nil, fmt.Errorf("get guest by token: %w", err)
	}
	return &g, nil
}

// DeleteExpired removes the row for token when it expired before now.
// Concurrent callers race harmlessly: the loser sees zero rows.
func (r *GuestRepository) DeleteExpired(ctx context.Context, token string, now time.Time) (_ int64, err error) {
	ctx, end := database.TraceQuery(ctx, "guests.DeleteExpired", deleteExpiredGuestQuery)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, deleteExpiredGuestQuery, token, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired guest: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *GuestRepository) DeleteByToken(ctx context.Context, token string) (_ int64, err error) {
	ctx, end := database.TraceQuery(ctx, "guests.DeleteByToken", deleteGuestQuery)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, deleteGuestQuery, token)
	if err != nil {
		return 0, fmt.Errorf("delete guest: %w", err)
	}
	return tag.RowsAffected(), nil
}
