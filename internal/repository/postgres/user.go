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
	insertUserQuery = `
		INSERT INTO users (id, name, email, email_verified, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertAccountQuery = `
		INSERT INTO accounts (id, user_id, account_id, provider_id, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	getUserQuery = `
		SELECT id, name, email, email_verified, image, created_at, updated_at
		FROM users
		WHERE id = $1`

	findCredentialQuery = `
		SELECT u.id, u.name, u.email, u.email_verified, u.image, u.created_at, u.updated_at,
		       a.id, a.account_id, a.provider_id, a.password, a.created_at, a.updated_at
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.provider_id = $1 AND a.account_id = $2`
)

// UserRepository implements user and account persistence using PostgreSQL.
type UserRepository struct {
	pool database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool database.DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateWithAccount inserts the user and its credential account atomically.
func (r *UserRepository) CreateWithAccount(ctx context.Context, u *domain.User, a *domain.Account) (err error) {
	ctx, end := database.TraceQuery(ctx, "users.CreateWithAccount", insertUserQuery)
	defer func() { end(err) }()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, insertUserQuery,
		u.ID, u.Name, u.Email, u.EmailVerified, u.Image, u.CreatedAt, u.UpdatedAt,
	); err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if _, err = tx.Exec(ctx, insertAccountQuery,
		a.ID, a.UserID, a.AccountID, a.ProviderID, a.Password, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (_ *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, "users.GetByID", getUserQuery)
	defer func() { end(err) }()

	var u domain.User
	err = r.pool.QueryRow(ctx, getUserQuery, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.Image, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// FindCredential looks up the credential account whose account id is email.
func (r *UserRepository) FindCredential(ctx context.Context, email string) (_ *domain.User, _ *domain.Account, err error) {
	ctx, end := database.TraceQuery(ctx, "users.FindCredential", findCredentialQuery)
	defer func() { end(err) }()

	var (
		u domain.User
		a domain.Account
	)
	err = r.pool.QueryRow(ctx, findCredentialQuery, domain.CredentialProvider, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.Image, &u.CreatedAt, &u.UpdatedAt,
		&a.ID, &a.AccountID, &a.ProviderID, &a.Password, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("account", email)
		}
		return nil, nil, fmt.Errorf("find credential account: %w", err)
	}
	a.UserID = u.ID
	return &u, &a, nil
}
