package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	constraintVendorSlot     = "unique_vendor_slot"
	constraintIdempotencyKey = "idempotency_keys_pkey"
)

type BookingRepository interface {
	// CreateWithReservation runs the whole reservation write as one
	// transaction: the booking row, its slot ledger row, and the
	// idempotency record either all commit or none do. respond is
	// called after the booking insert has assigned id/created_at and
	// its output becomes the cached idempotency payload.
	CreateWithReservation(ctx context.Context, booking *domain.Booking, key, scope string, respond func(*domain.Booking) ([]byte, error)) ([]byte, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	BookedSlotStarts(ctx context.Context, vendorID int64, starts []time.Time) ([]time.Time, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CreateWithReservation(ctx context.Context, booking *domain.Booking, key, scope string, respond func(*domain.Booking) ([]byte, error)) ([]byte, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	booking.Status = domain.BookingStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (vendor_id, buyer_id, start_time_utc, end_time_utc, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`, booking.VendorID, booking.BuyerID, booking.StartTimeUTC, booking.EndTimeUTC, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return nil, err
	}

	// The insert and the existence check are the same atomic operation:
	// whoever commits first owns the slot, everyone else sees 23505.
	if _, err := tx.Exec(ctx, `INSERT INTO booking_slots (booking_id, vendor_id, slot_start_utc) VALUES ($1, $2, $3)`,
		booking.ID, booking.VendorID, booking.StartTimeUTC); err != nil {
		if isUniqueViolation(err, constraintVendorSlot) {
			return nil, domain.NewConflictError("this time slot is already booked, please choose another time")
		}
		return nil, err
	}

	payload, err := respond(booking)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO idempotency_keys (key, scope, response) VALUES ($1, $2, $3)`,
		key, scope, payload); err != nil {
		if isUniqueViolation(err, constraintIdempotencyKey) {
			// Only reachable if a caller stored without a prior lookup
			// miss in the same transaction; report it, don't mask it.
			return nil, domain.NewPersistenceError("idempotency record already present", err)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, vendor_id, buyer_id, start_time_utc, end_time_utc, status, created_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.VendorID, &b.BuyerID, &b.StartTimeUTC, &b.EndTimeUTC, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("booking not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) BookedSlotStarts(ctx context.Context, vendorID int64, starts []time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT slot_start_utc FROM booking_slots WHERE vendor_id=$1 AND slot_start_utc = ANY($2)`, vendorID, starts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		booked = append(booked, t)
	}
	return booked, rows.Err()
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

var _ BookingRepository = (*PGBookingRepository)(nil)
