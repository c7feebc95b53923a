package domain

import "errors"

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrNoSeatsAvailable = errors.New("no seats available on this trip")
	ErrInvalidSeat      = errors.New("seat number must be a positive integer")
	ErrSeatOutOfRange   = errors.New("seat number is out of range for this vehicle")
	ErrSeatTaken        = errors.New("seat is already taken")

	// ErrSeatConflict maps the (trip_id, seat_number) unique violation; the
	// booking service retries it with a fresh ledger read.
	ErrSeatConflict = errors.New("seat was claimed by a concurrent booking")

	// ErrContention is surfaced once the conflict retries are exhausted.
	ErrContention = errors.New("could not allocate a seat, please try again")
)

// FieldError ties a validation failure to the input field that caused it,
// so handlers can attach the message to the right form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}
