package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

const (
	insertSessionQuery = `
		INSERT INTO sessions (id, user_id, ip_address, user_agent, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`

	getSessionQuery = `
		SELECT id, user_id, ip_address, user_agent, expires_at, created_at
		FROM sessions
		WHERE id = $1`

	deleteSessionQuery = `DELETE FROM sessions WHERE id = $1`
)

// SessionRepository implements signed-in session persistence using PostgreSQL.
type SessionRepository struct {
	pool database.DBTX
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(pool database.DBTX) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (err error) {
	ctx, end := database.TraceQuery(ctx, "sessions.Create", insertSessionQuery)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, insertSessionQuery,
		s.ID, s.UserID, s.IPAddress, s.UserAgent, s.ExpiresAt, s.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (_ *domain.Session, err error) {
	ctx, end := database.TraceQuery(ctx, "sessions.GetByID", getSessionQuery)
	defer func() { end(err) }()

	var s domain.Session
	err = r.pool.QueryRow(ctx, getSessionQuery, id).Scan(
		&s.ID, &s.UserID, &s.IPAddress, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("session", id)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := database.TraceQuery(ctx, "sessions.Delete", deleteSessionQuery)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, deleteSessionQuery, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
