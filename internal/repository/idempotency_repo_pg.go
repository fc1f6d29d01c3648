package repository

import (
	"context"
	"errors"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository interface {
	// Lookup returns (nil, nil) on a miss.
	Lookup(ctx context.Context, key, scope string) (*domain.IdempotencyRecord, error)
}

type PGIdempotencyRepository struct {
	db *pgxpool.Pool
}

func NewIdempotencyRepository(db *pgxpool.Pool) IdempotencyRepository {
	return &PGIdempotencyRepository{db: db}
}

func (r *PGIdempotencyRepository) Lookup(ctx context.Context, key, scope string) (*domain.IdempotencyRecord, error) {
	row := r.db.QueryRow(ctx, `SELECT key, scope, response, created_at FROM idempotency_keys WHERE key=$1 AND scope=$2`, key, scope)
	var rec domain.IdempotencyRecord
	if err := row.Scan(&rec.Key, &rec.Scope, &rec.Response, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

var _ IdempotencyRepository = (*PGIdempotencyRepository)(nil)
