package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema for the reservation core. The three uniqueness constraints
// (vendor+slot, key+scope, payment ref) are the concurrency-control
// mechanism; they must live in the database, not in application checks.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT 'Africa/Lagos',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		vendor_id BIGINT NOT NULL REFERENCES vendors(id),
		buyer_id BIGINT NOT NULL DEFAULT 1,
		start_time_utc TIMESTAMPTZ(3) NOT NULL,
		end_time_utc TIMESTAMPTZ(3) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (start_time_utc < end_time_utc)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_slots (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL REFERENCES bookings(id),
		vendor_id BIGINT NOT NULL,
		slot_start_utc TIMESTAMPTZ(3) NOT NULL,
		CONSTRAINT unique_vendor_slot UNIQUE (vendor_id, slot_start_utc)
	)`,
	`CREATE TABLE IF NOT EXISTS idempotency_keys (
		key TEXT NOT NULL,
		scope TEXT NOT NULL,
		response JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT idempotency_keys_pkey PRIMARY KEY (key, scope)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL REFERENCES bookings(id),
		ref TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		raw_event JSONB,
		CONSTRAINT payments_ref_key UNIQUE (ref)
	)`,
}

// RunMigrations applies the schema at startup. Statements are
// idempotent, so repeated runs are safe.
func RunMigrations(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
