package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         int64
	UserID     int64
	TripID     int64
	SeatNumber *int
	Reference  string
	Status     BookingStatus
	BookedAt   time.Time
	UpdatedAt  time.Time
}

// Released reports whether the booking no longer holds a seat.
func (b *Booking) Released() bool {
	return b.SeatNumber == nil
}
