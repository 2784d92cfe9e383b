package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdentityRepository owns the users table.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// UpsertUser inserts the user or, when the external key already exists,
// refreshes the display values and returns the existing internal id. The
// unique constraint on external_key resolves concurrent first-time calls to
// a single row.
func (r *IdentityRepository) UpsertUser(ctx context.Context, externalKey, displayName, handle string) (int64, error) {
	const stmt = `
INSERT INTO users (external_key, display_name, handle)
VALUES ($1, $2, $3)
ON CONFLICT (external_key) DO UPDATE SET
	display_name = EXCLUDED.display_name,
	handle = EXCLUDED.handle
RETURNING id`

	var id int64
	if err := r.queryRow(ctx, stmt, externalKey, displayName, handle).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert user: %w", err)
	}
	return id, nil
}

func (r *IdentityRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
