package repository

import (
	"context"
	"errors"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	Seed(ctx context.Context) error
}

type PGVendorRepository struct {
	db *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) VendorRepository {
	return &PGVendorRepository{db: db}
}

func (r *PGVendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, timezone FROM vendors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := make([]domain.Vendor, 0)
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Timezone); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *PGVendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, timezone FROM vendors WHERE id=$1`, id)
	var v domain.Vendor
	if err := row.Scan(&v.ID, &v.Name, &v.Timezone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("vendor not found")
		}
		return nil, err
	}
	return &v, nil
}

// Seed inserts the reference vendors once; a non-empty table is left
// untouched.
func (r *PGVendorRepository) Seed(ctx context.Context) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM vendors`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, `INSERT INTO vendors (name, timezone) VALUES
		('Maes Dining', 'Africa/Lagos'),
		('Arike Preorder', 'Africa/Lagos'),
		('Simi Stitches', 'Africa/Lagos')`)
	return err
}

var _ VendorRepository = (*PGVendorRepository)(nil)
