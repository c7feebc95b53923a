package domain

import "time"

type Trip struct {
	ID                 int64
	RouteID            int64
	VehicleID          *int64
	TimetableID        *int64
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	AvailableSeats     int
	// SeatsOverridden is set when staff edit AvailableSeats directly.
	// Vehicle swaps only re-derive the counter while it is false.
	SeatsOverridden bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SeatMap is the read-side view of seat occupancy on a trip.
type SeatMap struct {
	TripID      int64 `json:"trip_id"`
	Capacity    int   `json:"capacity"`
	BookedSeats []int `json:"booked_seats"`
	Available   int   `json:"available"`
}
