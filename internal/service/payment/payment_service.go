package payment

import (
	"context"
	"fmt"
	"log"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/kafka"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/repository"
	"github.com/google/uuid"
)

// EventChargeSuccess is the only confirmation event type the provider
// sends for a successful charge.
const EventChargeSuccess = "charge.success"

type PaymentUseCase interface {
	Initialize(ctx context.Context, bookingID int64) (string, error)
	Confirm(ctx context.Context, event ConfirmationEvent) (*ConfirmResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ConfirmationEvent is a provider webhook, authenticity already
// verified upstream. Raw is the full payload as delivered; it is stored
// with the payment for audit.
type ConfirmationEvent struct {
	Event     string
	Reference string
	Raw       []byte
}

type ConfirmResult struct {
	PaymentID        int64
	BookingID        int64
	AlreadyProcessed bool
}

type PaymentService struct {
	payments           repository.PaymentRepository
	bookings           repository.BookingRepository
	producer           Producer
	notificationsTopic string
}

type PaymentServiceOption func(*PaymentService)

func WithNotificationsTopic(topic string) PaymentServiceOption {
	return func(s *PaymentService) {
		s.notificationsTopic = topic
	}
}

func NewPaymentService(payments repository.PaymentRepository, bookings repository.BookingRepository, producer Producer, opts ...PaymentServiceOption) *PaymentService {
	service := &PaymentService{
		payments: payments,
		bookings: bookings,
		producer: producer,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Initialize creates a pending payment for an existing booking and
// returns its external reference. A single insert, no transaction
// needed; ref uniqueness is enforced by the payments table.
func (s *PaymentService) Initialize(ctx context.Context, bookingID int64) (string, error) {
	if bookingID == 0 {
		return "", domain.NewValidationError("bookingId is required")
	}

	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return "", err
	}

	payment := &domain.Payment{
		BookingID: bookingID,
		Ref:       fmt.Sprintf("PAY_%s", uuid.NewString()),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return "", err
	}
	return payment.Ref, nil
}

// Confirm drives pending -> success. Duplicate deliveries of the same
// confirmation are no-ops that still report success; the payment update
// and the owning booking's paid flip commit together or not at all.
func (s *PaymentService) Confirm(ctx context.Context, event ConfirmationEvent) (*ConfirmResult, error) {
	if event.Event != EventChargeSuccess || event.Reference == "" {
		return nil, domain.NewValidationError("invalid webhook payload")
	}

	payment, err := s.payments.GetByRef(ctx, event.Reference)
	if err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentStatusSuccess {
		return &ConfirmResult{
			PaymentID:        payment.ID,
			BookingID:        payment.BookingID,
			AlreadyProcessed: true,
		}, nil
	}

	if err := s.payments.ConfirmSuccess(ctx, payment.ID, payment.BookingID, event.Raw); err != nil {
		return nil, err
	}

	if err := s.publishPaid(ctx, payment); err != nil {
		log.Printf("WARNING: failed to publish payment_succeeded event for payment %d: %v", payment.ID, err)
	}

	return &ConfirmResult{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
	}, nil
}

func (s *PaymentService) publishPaid(ctx context.Context, payment *domain.Payment) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       "payment_succeeded",
		BookingID:  payment.BookingID,
		Status:     string(domain.BookingStatusPaid),
		PaymentRef: payment.Ref,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, payment.Ref, event)
}

var _ PaymentUseCase = (*PaymentService)(nil)
