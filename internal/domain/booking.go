package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
	BookingStatusPaid    BookingStatus = "paid"
)

type Booking struct {
	ID           int64
	VendorID     int64
	BuyerID      int64
	StartTimeUTC time.Time
	EndTimeUTC   time.Time
	Status       BookingStatus
	CreatedAt    time.Time
}

// SlotReservation is the ledger row that arbitrates slot ownership.
// (vendor_id, slot_start_utc) is unique in the database; that constraint
// is the only thing preventing a double booking.
type SlotReservation struct {
	ID           int64
	BookingID    int64
	VendorID     int64
	SlotStartUTC time.Time
}
