package trips

import (
	"context"
	"log"
	"time"

	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/repository"
)

type TripUseCase interface {
	List(ctx context.Context) ([]domain.Trip, error)
	Get(ctx context.Context, id int64) (*domain.Trip, error)
	SeatMap(ctx context.Context, tripID int64) (*domain.SeatMap, error)
	Create(ctx context.Context, input TripInput) (*domain.Trip, error)
	Update(ctx context.Context, id int64, input TripInput) (*domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetTrips(ctx context.Context) ([]domain.Trip, error)
	SetTrips(ctx context.Context, trips []domain.Trip) error
	InvalidateTrips(ctx context.Context) error
}

type TripService struct {
	trips    repository.TripRepository
	vehicles repository.VehicleRepository
	cache    Cache
}

type TripInput struct {
	RouteID            int64
	VehicleID          *int64
	TimetableID        *int64
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	// AvailableSeats set means staff chose the counter by hand; nil means
	// derive it from the vehicle.
	AvailableSeats *int
}

func NewTripService(trips repository.TripRepository, vehicles repository.VehicleRepository, cache Cache) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, cache: cache}
}

func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTrips(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTrips(ctx, trips)
	}
	return trips, nil
}

func (s *TripService) Get(ctx context.Context, id int64) (*domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

func (s *TripService) SeatMap(ctx context.Context, tripID int64) (*domain.SeatMap, error) {
	return s.trips.SeatMap(ctx, tripID)
}

func (s *TripService) Create(ctx context.Context, input TripInput) (*domain.Trip, error) {
	trip := &domain.Trip{
		RouteID:            input.RouteID,
		VehicleID:          input.VehicleID,
		TimetableID:        input.TimetableID,
		ScheduledDeparture: input.ScheduledDeparture,
		ScheduledArrival:   input.ScheduledArrival,
	}

	if input.AvailableSeats != nil {
		trip.AvailableSeats = *input.AvailableSeats
		trip.SeatsOverridden = true
	} else if input.VehicleID != nil {
		capacity, err := s.vehicleCapacity(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		trip.AvailableSeats = capacity
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return trip, nil
}

// Update applies staff edits. Editing the counter directly flips the
// override flag; swapping the vehicle re-derives the counter from the new
// vehicle's capacity only while the flag is unset, so a manual override is
// never clobbered by a later vehicle change.
func (s *TripService) Update(ctx context.Context, id int64, input TripInput) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicleChanged := !sameVehicle(trip.VehicleID, input.VehicleID)

	trip.RouteID = input.RouteID
	trip.VehicleID = input.VehicleID
	trip.TimetableID = input.TimetableID
	trip.ScheduledDeparture = input.ScheduledDeparture
	trip.ScheduledArrival = input.ScheduledArrival
	trip.ActualDeparture = input.ActualDeparture
	trip.ActualArrival = input.ActualArrival

	switch {
	case input.AvailableSeats != nil:
		trip.AvailableSeats = *input.AvailableSeats
		trip.SeatsOverridden = true
	case vehicleChanged && !trip.SeatsOverridden && input.VehicleID != nil:
		capacity, err := s.vehicleCapacity(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		trip.AvailableSeats = capacity
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TripService) vehicleCapacity(ctx context.Context, vehicleID int64) (int, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return 0, err
	}
	return vehicle.Capacity, nil
}

func (s *TripService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTrips(ctx); err != nil {
		log.Printf("trips: invalidate cache: %v", err)
	}
}

func sameVehicle(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var _ TripUseCase = (*TripService)(nil)
