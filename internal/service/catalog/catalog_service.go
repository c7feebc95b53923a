package catalog

import (
	"context"
	"errors"

	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/repository"
)

// CatalogService fronts the plain data-entry entities. Validation here is
// shallow on purpose; nothing in the catalog carries concurrency invariants.
type CatalogService struct {
	catalog  repository.CatalogRepository
	vehicles repository.VehicleRepository
}

func NewCatalogService(catalog repository.CatalogRepository, vehicles repository.VehicleRepository) *CatalogService {
	return &CatalogService{catalog: catalog, vehicles: vehicles}
}

func (s *CatalogService) ListRoutes(ctx context.Context, activeOnly bool) ([]domain.Route, error) {
	return s.catalog.ListRoutes(ctx, activeOnly)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.catalog.GetRoute(ctx, id)
}

func (s *CatalogService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if route.Name == "" || route.Code == "" {
		return domain.NewFieldError("code", errors.New("name and code are required"))
	}
	return s.catalog.CreateRoute(ctx, route)
}

func (s *CatalogService) UpdateRoute(ctx context.Context, route *domain.Route) error {
	if route.Name == "" || route.Code == "" {
		return domain.NewFieldError("code", errors.New("name and code are required"))
	}
	return s.catalog.UpdateRoute(ctx, route)
}

func (s *CatalogService) DeleteRoute(ctx context.Context, id int64) error {
	return s.catalog.DeleteRoute(ctx, id)
}

func (s *CatalogService) ListStops(ctx context.Context, routeID int64) ([]domain.Stop, error) {
	return s.catalog.ListStops(ctx, routeID)
}

func (s *CatalogService) CreateStop(ctx context.Context, stop *domain.Stop) error {
	if stop.Name == "" || stop.Code == "" {
		return domain.NewFieldError("code", errors.New("name and code are required"))
	}
	return s.catalog.CreateStop(ctx, stop)
}

func (s *CatalogService) DeleteStop(ctx context.Context, id int64) error {
	return s.catalog.DeleteStop(ctx, id)
}

func (s *CatalogService) ListTimetables(ctx context.Context, routeID int64) ([]domain.Timetable, error) {
	return s.catalog.ListTimetables(ctx, routeID)
}

func (s *CatalogService) CreateTimetable(ctx context.Context, tt *domain.Timetable) error {
	return s.catalog.CreateTimetable(ctx, tt)
}

func (s *CatalogService) DeleteTimetable(ctx context.Context, id int64) error {
	return s.catalog.DeleteTimetable(ctx, id)
}

func (s *CatalogService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *CatalogService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *CatalogService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	return s.vehicles.Create(ctx, vehicle)
}

func (s *CatalogService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	return s.vehicles.Update(ctx, vehicle)
}

func (s *CatalogService) DeleteVehicle(ctx context.Context, id int64) error {
	return s.vehicles.Delete(ctx, id)
}

func validateVehicle(vehicle *domain.Vehicle) error {
	if vehicle.Code == "" {
		return domain.NewFieldError("code", errors.New("code is required"))
	}
	if vehicle.Type != domain.VehicleTypeBus && vehicle.Type != domain.VehicleTypeTrain {
		return domain.NewFieldError("vehicle_type", errors.New("vehicle type must be bus or train"))
	}
	if vehicle.Capacity <= 0 {
		return domain.NewFieldError("capacity", errors.New("capacity must be positive"))
	}
	return nil
}
