package pgsql

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the pool shared by the PostgreSQL repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// execOne runs a write that must hit a row. Matching no row yields
// apperrors.ErrNotFound.
func (r *BaseRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
