package repository

import (
	"context"
	"errors"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByRef(ctx context.Context, ref string) (*domain.Payment, error)
	// ConfirmSuccess moves the payment to success and its owning
	// booking to paid in a single transaction.
	ConfirmSuccess(ctx context.Context, paymentID, bookingID int64, rawEvent []byte) error
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	payment.Status = domain.PaymentStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, ref, status) VALUES ($1, $2, $3) RETURNING id`,
		payment.BookingID, payment.Ref, payment.Status).Scan(&payment.ID)
}

func (r *PGPaymentRepository) GetByRef(ctx context.Context, ref string) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT id, booking_id, ref, status, raw_event FROM payments WHERE ref=$1`, ref)
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.Ref, &p.Status, &p.RawEvent); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("payment not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPaymentRepository) ConfirmSuccess(ctx context.Context, paymentID, bookingID int64, rawEvent []byte) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE payments SET status=$1, raw_event=$2 WHERE id=$3`,
		domain.PaymentStatusSuccess, rawEvent, paymentID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`,
		domain.BookingStatusPaid, bookingID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
