package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/kafka"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/repository"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/slots"
)

// Scope is the operation category under which reservation responses are
// cached in the idempotency store.
const Scope = "bookings"

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type BookingUseCase interface {
	Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error)
	Availability(ctx context.Context, vendorID int64, date string) ([]time.Time, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}

type Cache interface {
	GetVendors(ctx context.Context) ([]domain.Vendor, error)
	SetVendors(ctx context.Context, vendors []domain.Vendor) error
	GetAvailability(ctx context.Context, vendorID int64, date string) ([]time.Time, error)
	SetAvailability(ctx context.Context, vendorID int64, date string, slots []time.Time) error
	InvalidateAvailability(ctx context.Context, vendorID int64, date string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	vendors            repository.VendorRepository
	idempotency        repository.IdempotencyRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	leadTime           time.Duration
	now                func() time.Time
}

type ReserveInput struct {
	IdempotencyKey string
	VendorID       int64
	BuyerID        int64
	Start          time.Time
	End            time.Time
}

// ReserveResult carries the canonical response payload. On a replay the
// payload comes from the idempotency store byte-for-byte and Created is
// false.
type ReserveResult struct {
	Payload []byte
	Created bool
}

// BookingResponse is the canonical wire representation of a booking; the
// idempotency store caches exactly this JSON.
type BookingResponse struct {
	ID           int64  `json:"id"`
	VendorID     int64  `json:"vendorId"`
	StartTimeUTC string `json:"startTimeUtc"`
	EndTimeUTC   string `json:"endTimeUtc"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		VendorID:     b.VendorID,
		StartTimeUTC: b.StartTimeUTC.UTC().Format(timeLayout),
		EndTimeUTC:   b.EndTimeUTC.UTC().Format(timeLayout),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.UTC().Format(timeLayout),
	}
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source for lead-time checks.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	vendors repository.VendorRepository,
	idempotency repository.IdempotencyRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	leadTime time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		vendors:      vendors,
		idempotency:  idempotency,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		leadTime:     leadTime,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Reserve claims a vendor slot. Concurrency control is entirely the
// ledger's uniqueness constraint: concurrent competitors for the same
// (vendor, start) resolve to one success and the rest conflicts, and
// retries with the same idempotency key replay the cached response
// without re-executing any write.
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error) {
	if input.IdempotencyKey == "" {
		return nil, domain.NewValidationError("missing idempotency key")
	}
	if input.VendorID == 0 || input.Start.IsZero() || input.End.IsZero() {
		return nil, domain.NewValidationError("missing required fields: vendorId, startTimeUtc, endTimeUtc")
	}
	if !input.Start.Before(input.End) {
		return nil, domain.NewValidationError("startTimeUtc must be before endTimeUtc")
	}

	cached, err := s.idempotency.Lookup(ctx, input.IdempotencyKey, Scope)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &ReserveResult{Payload: cached.Response, Created: false}, nil
	}

	vendor, err := s.vendors.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(vendor.Timezone)
	if err != nil {
		return nil, domain.NewPersistenceError("invalid vendor timezone", err)
	}

	if err := s.checkLeadTime(input.Start, loc); err != nil {
		return nil, err
	}

	buyerID := input.BuyerID
	if buyerID == 0 {
		buyerID = 1
	}
	booking := &domain.Booking{
		VendorID:     input.VendorID,
		BuyerID:      buyerID,
		StartTimeUTC: input.Start.UTC().Truncate(time.Millisecond),
		EndTimeUTC:   input.End.UTC().Truncate(time.Millisecond),
	}

	payload, err := s.bookings.CreateWithReservation(ctx, booking, input.IdempotencyKey, Scope, func(b *domain.Booking) ([]byte, error) {
		return json.Marshal(NewBookingResponse(b))
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		date := booking.StartTimeUTC.In(loc).Format("2006-01-02")
		if err := s.cache.InvalidateAvailability(ctx, booking.VendorID, date); err != nil {
			log.Printf("invalidate availability cache: %v", err)
		}
	}
	if err := s.publish(ctx, "booking_created", booking, ""); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %d: %v", booking.ID, err)
	}

	return &ReserveResult{Payload: payload, Created: true}, nil
}

// checkLeadTime enforces the same-day floor: a booking whose local
// calendar date is today must start strictly after now+leadTime in the
// vendor's zone. Future dates skip the check.
func (s *BookingService) checkLeadTime(start time.Time, loc *time.Location) error {
	nowLocal := s.now().In(loc)
	startLocal := start.In(loc)

	ny, nm, nd := nowLocal.Date()
	by, bm, bd := startLocal.Date()
	if ny != by || nm != bm || nd != bd {
		return nil
	}

	minimum := nowLocal.Add(s.leadTime)
	if !startLocal.After(minimum) {
		return domain.NewLeadTimeError(
			fmt.Sprintf("bookings for today must start more than %s from now", s.leadTime),
			minimum,
		)
	}
	return nil
}

// Availability returns the free slot starts for a vendor and date:
// generated candidates minus ledger rows, compared by exact instant.
func (s *BookingService) Availability(ctx context.Context, vendorID int64, date string) ([]time.Time, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAvailability(ctx, vendorID, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(vendor.Timezone)
	if err != nil {
		return nil, domain.NewPersistenceError("invalid vendor timezone", err)
	}

	candidates, err := slots.Generate(date, loc)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.BookedSlotStarts(ctx, vendorID, candidates)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]struct{}, len(booked))
	for _, t := range booked {
		taken[t.UnixMilli()] = struct{}{}
	}

	available := make([]time.Time, 0, len(candidates))
	for _, t := range candidates {
		if _, ok := taken[t.UnixMilli()]; !ok {
			available = append(available, t)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetAvailability(ctx, vendorID, date, available); err != nil {
			log.Printf("set availability cache: %v", err)
		}
	}
	return available, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVendors(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetVendors(ctx, vendors)
	}
	return vendors, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, paymentRef string) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		VendorID:     booking.VendorID,
		BuyerID:      booking.BuyerID,
		StartTimeUTC: booking.StartTimeUTC,
		EndTimeUTC:   booking.EndTimeUTC,
		Status:       string(booking.Status),
		PaymentRef:   paymentRef,
	}
	key := fmt.Sprintf("%d", booking.ID)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
