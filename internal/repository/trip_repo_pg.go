package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/internal/domain"
)

type TripRepository interface {
	List(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	Create(ctx context.Context, trip *domain.Trip) error
	Update(ctx context.Context, trip *domain.Trip) error
	Delete(ctx context.Context, id int64) error
	SeatMap(ctx context.Context, tripID int64) (*domain.SeatMap, error)
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

const tripColumns = `id, route_id, vehicle_id, timetable_id, scheduled_departure, scheduled_arrival,
	actual_departure, actual_arrival, available_seats, seats_overridden, created_at, updated_at`

func (r *PGTripRepository) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY scheduled_departure DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

func (r *PGTripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	return r.db.QueryRow(ctx, `INSERT INTO trips
		(route_id, vehicle_id, timetable_id, scheduled_departure, scheduled_arrival, available_seats, seats_overridden)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		trip.RouteID, trip.VehicleID, trip.TimetableID, trip.ScheduledDeparture, trip.ScheduledArrival,
		trip.AvailableSeats, trip.SeatsOverridden).
		Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
}

func (r *PGTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	cmd, err := r.db.Exec(ctx, `UPDATE trips SET
		route_id = $1, vehicle_id = $2, timetable_id = $3,
		scheduled_departure = $4, scheduled_arrival = $5,
		actual_departure = $6, actual_arrival = $7,
		available_seats = $8, seats_overridden = $9, updated_at = now()
		WHERE id = $10`,
		trip.RouteID, trip.VehicleID, trip.TimetableID,
		trip.ScheduledDeparture, trip.ScheduledArrival,
		trip.ActualDeparture, trip.ActualArrival,
		trip.AvailableSeats, trip.SeatsOverridden, trip.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *PGTripRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

// SeatMap reads capacity, the occupied seat set and the counter in one
// consistent snapshot.
func (r *PGTripRepository) SeatMap(ctx context.Context, tripID int64) (*domain.SeatMap, error) {
	sm := &domain.SeatMap{TripID: tripID}
	err := r.db.QueryRow(ctx, `SELECT t.available_seats, COALESCE(v.capacity, 0)
		FROM trips t
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.id = $1`, tripID).Scan(&sm.Available, &sm.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT seat_number FROM bookings WHERE trip_id = $1 AND seat_number IS NOT NULL`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sm.BookedSeats = make([]int, 0)
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		sm.BookedSeats = append(sm.BookedSeats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Ints(sm.BookedSeats)
	return sm, nil
}

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var t domain.Trip
	if err := row.Scan(&t.ID, &t.RouteID, &t.VehicleID, &t.TimetableID,
		&t.ScheduledDeparture, &t.ScheduledArrival, &t.ActualDeparture, &t.ActualArrival,
		&t.AvailableSeats, &t.SeatsOverridden, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ TripRepository = (*PGTripRepository)(nil)
