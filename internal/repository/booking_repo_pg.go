package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/internal/domain"
)

const uniqueViolationCode = "23505"

type BookingRepository interface {
	ReserveSeat(ctx context.Context, tripID, userID int64, seat int, requested bool) (*domain.Booking, error)
	ReleaseSeat(ctx context.Context, bookingID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, trip_id, seat_number, reference, status, booked_at, updated_at`

// ReserveSeat runs one allocation attempt as a single transaction: lock the
// trip row, read the seat ledger, decide a seat, decrement the counter and
// insert the confirmed booking. A (trip_id, seat_number) unique violation
// comes back as domain.ErrSeatConflict for the caller to retry.
func (r *PGBookingRepository) ReserveSeat(ctx context.Context, tripID, userID int64, seat int, requested bool) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var available, capacity int
	err = tx.QueryRow(ctx, `SELECT t.available_seats, COALESCE(v.capacity, 0)
		FROM trips t
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.id = $1
		FOR UPDATE OF t`, tripID).Scan(&available, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}

	occupied, err := occupiedSeats(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}

	assigned, err := domain.AllocateSeat(capacity, available, occupied, seat, requested)
	if err != nil {
		return nil, err
	}

	// Relative update, guarded so the counter can never go negative even if
	// a decrement lands outside this lock scope.
	cmd, err := tx.Exec(ctx, `UPDATE trips SET available_seats = available_seats - 1, updated_at = now()
		WHERE id = $1 AND available_seats > 0`, tripID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNoSeatsAvailable
	}

	booking := &domain.Booking{
		UserID:     userID,
		TripID:     tripID,
		SeatNumber: &assigned,
		Reference:  uuid.NewString(),
		Status:     domain.BookingStatusConfirmed,
	}
	err = tx.QueryRow(ctx, `INSERT INTO bookings (user_id, trip_id, seat_number, reference, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booked_at, updated_at`,
		userID, tripID, assigned, booking.Reference, booking.Status).
		Scan(&booking.ID, &booking.BookedAt, &booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSeatConflict
		}
		return nil, err
	}

	return booking, tx.Commit(ctx)
}

// ReleaseSeat gives the booking's seat back to the trip. Releasing an
// already-released booking is a no-op and never increments the counter twice.
func (r *PGBookingRepository) ReleaseSeat(ctx context.Context, bookingID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var tripID int64
	var seat *int
	err = tx.QueryRow(ctx, `SELECT trip_id, seat_number FROM bookings WHERE id = $1`, bookingID).
		Scan(&tripID, &seat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrBookingNotFound
		}
		return err
	}
	if seat == nil {
		return nil
	}

	// Same lock the allocator takes, so concurrent seat decisions see a
	// serialized ledger.
	if _, err := tx.Exec(ctx, `SELECT id FROM trips WHERE id = $1 FOR UPDATE`, tripID); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET seat_number = NULL, updated_at = now()
		WHERE id = $1 AND seat_number IS NOT NULL`, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Lost the race with another release; nothing to give back.
		return tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `UPDATE trips SET available_seats = available_seats + 1, updated_at = now()
		WHERE id = $1`, tripID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY booked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateStatus touches only the status column; seat-affecting work goes
// through ReserveSeat/ReleaseSeat under the trip lock.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// occupiedSeats is the seat ledger: every seat number attached to any
// booking on the trip, regardless of status. Must run inside the same
// transaction that holds the trip row lock.
func occupiedSeats(ctx context.Context, tx pgx.Tx, tripID int64) (map[int]bool, error) {
	rows, err := tx.Query(ctx, `SELECT seat_number FROM bookings WHERE trip_id = $1 AND seat_number IS NOT NULL`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[int]bool)
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		occupied[seat] = true
	}
	return occupied, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.TripID, &b.SeatNumber, &b.Reference, &b.Status, &b.BookedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

var _ BookingRepository = (*PGBookingRepository)(nil)
