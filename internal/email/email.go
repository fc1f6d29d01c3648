package email

import (
	"context"
	"fmt"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify buyer %d: %s for booking %d (vendor %d, starts %s)\n",
		event.BuyerID, event.Type, event.BookingID, event.VendorID, event.StartTimeUTC)
	return nil
}
