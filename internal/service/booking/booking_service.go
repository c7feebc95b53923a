package booking

import (
	"context"
	"errors"
	"log"

	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/kafka"
	"github.com/zvrva/transitline/internal/repository"
)

// maxAttempts bounds the retry loop around the (trip_id, seat_number)
// unique constraint. Each attempt re-locks the trip and re-reads the ledger.
const maxAttempts = 3

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
	Delete(ctx context.Context, userID, bookingID int64) error
	Get(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	producer           Producer
	notificationsTopic string
}

type CreateBookingInput struct {
	UserID int64
	TripID int64
	// SeatNumber is the raw submitted value; empty means auto-assign.
	SeatNumber string
}

func NewBookingService(bookings repository.BookingRepository, users repository.UserRepository, producer Producer, notificationsTopic string) *BookingService {
	return &BookingService{
		bookings:           bookings,
		users:              users,
		producer:           producer,
		notificationsTopic: notificationsTopic,
	}
}

// Create reserves a seat on a trip for the requesting user. The whole
// allocation runs under the trip row lock inside the repository; this
// layer owns input validation, the bounded retry on seat conflicts and
// the fire-and-forget confirmation notification.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.TripID <= 0 {
		return nil, domain.NewFieldError("trip", domain.ErrTripNotFound)
	}
	seat, requested, err := domain.ParseSeat(input.SeatNumber)
	if err != nil {
		return nil, domain.NewFieldError("seat_number", err)
	}

	var booking *domain.Booking
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		booking, err = s.bookings.ReserveSeat(ctx, input.TripID, input.UserID, seat, requested)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrSeatConflict) {
			log.Printf("booking: seat conflict on trip %d (attempt %d/%d), retrying", input.TripID, attempt, maxAttempts)
			continue
		}
		return nil, tagCreateError(err)
	}
	if err != nil {
		return nil, domain.NewFieldError("trip", domain.ErrContention)
	}

	s.notify(ctx, kafka.EventBookingConfirmed, booking)
	return booking, nil
}

// Cancel releases the booking's seat and marks it cancelled. The release
// and the status change are separate steps: a failed release is logged
// for reconciliation but never blocks the cancellation itself.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	current, err := s.Get(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	if err := s.bookings.ReleaseSeat(ctx, bookingID); err != nil {
		log.Printf("booking: release seat for booking %d failed: %v", bookingID, err)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, kafka.EventBookingCancelled, updated)
	return updated, nil
}

// Delete removes the booking record, giving its seat back first.
func (s *BookingService) Delete(ctx context.Context, userID, bookingID int64) error {
	if _, err := s.Get(ctx, userID, bookingID); err != nil {
		return err
	}

	if err := s.bookings.ReleaseSeat(ctx, bookingID); err != nil {
		log.Printf("booking: release seat for booking %d failed: %v", bookingID, err)
	}

	return s.bookings.Delete(ctx, bookingID)
}

// Get loads a booking scoped to its owner. Other users' bookings are
// indistinguishable from missing ones.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// notify hands the event to the notifications topic without blocking the
// caller. Failures are logged and swallowed: a booking is never rolled
// back or surfaced as failed because its confirmation did not send.
func (s *BookingService) notify(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}

	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		TripID:    booking.TripID,
		Status:    string(booking.Status),
		BookedAt:  booking.BookedAt,
	}
	if booking.SeatNumber != nil {
		event.SeatNumber = *booking.SeatNumber
	}
	if user, err := s.users.GetByID(ctx, booking.UserID); err == nil {
		event.Email = user.Email
	} else {
		log.Printf("booking: lookup user %d for notification failed: %v", booking.UserID, err)
	}

	go func(ctx context.Context) {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.Reference, event); err != nil {
			log.Printf("booking: publish %s for booking %s failed: %v", eventType, event.Reference, err)
		}
	}(context.WithoutCancel(ctx))
}

// tagCreateError attaches allocation failures to the form field they
// belong to. Anything unrecognized passes through for the outer boundary
// to treat as unexpected.
func tagCreateError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidSeat),
		errors.Is(err, domain.ErrSeatOutOfRange),
		errors.Is(err, domain.ErrSeatTaken):
		return domain.NewFieldError("seat_number", err)
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		return domain.NewFieldError("trip", err)
	case errors.Is(err, domain.ErrTripNotFound):
		return err
	default:
		return err
	}
}

var _ BookingUseCase = (*BookingService)(nil)
