package email

import (
	"context"
	"fmt"
	"log"

	"github.com/zvrva/transitline/internal/kafka"
)

// Sender delivers booking confirmation messages on the worker side of the
// notifications topic. Delivery problems stay on this side of the fence;
// the booking flow never hears about them.
type Sender struct {
	from string
}

func NewSender(from string) *Sender {
	return &Sender{from: from}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		log.Printf("email: booking %s has no recipient, skipping", event.Reference)
		return nil
	}

	subject := fmt.Sprintf("Booking %s %s", event.Reference, event.Status)
	body := fmt.Sprintf("Your booking for trip %d (seat %d) is %s.", event.TripID, event.SeatNumber, event.Status)
	log.Printf("email: from=%s to=%s subject=%q body=%q", s.from, event.Email, subject, body)
	return nil
}
