package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

// LookupRepository reads the gender, color and size tables.
type LookupRepository struct {
	pool database.DBTX
}

// NewLookupRepository creates a new PostgreSQL-backed lookup repository.
func NewLookupRepository(pool database.DBTX) *LookupRepository {
	return &LookupRepository{pool: pool}
}

func collect[T any](ctx context.Context, pool database.DBTX, op, query string, scan func(pgx.Rows) (T, error)) (_ []T, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s iterate: %w", op, err)
	}
	return out, nil
}

func (r *LookupRepository) Genders(ctx context.Context) ([]domain.Gender, error) {
	return collect(ctx, r.pool, "genders.List", `SELECT id, label, slug FROM genders ORDER BY label`,
		func(rows pgx.Rows) (domain.Gender, error) {
			var g domain.Gender
			err := rows.Scan(&g.ID, &g.Label, &g.Slug)
			return g, err
		})
}

func (r *LookupRepository) Colors(ctx context.Context) ([]domain.Color, error) {
	return collect(ctx, r.pool, "colors.List", `SELECT id, name, slug, hex_code FROM colors ORDER BY name`,
		func(rows pgx.Rows) (domain.Color, error) {
			var c domain.Color
			err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.HexCode)
			return c, err
		})
}

func (r *LookupRepository) Sizes(ctx context.Context) ([]domain.Size, error) {
	return collect(ctx, r.pool, "sizes.List", `SELECT id, name, slug, sort_order FROM sizes ORDER BY sort_order, name`,
		func(rows pgx.Rows) (domain.Size, error) {
			var s domain.Size
			err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.SortOrder)
			return s, err
		})
}
