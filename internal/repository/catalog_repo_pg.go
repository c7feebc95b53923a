package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/internal/domain"
)

// CatalogRepository covers the plain data-entry entities: routes, stops
// and timetable rows. No invariant-preserving logic lives here.
type CatalogRepository interface {
	ListRoutes(ctx context.Context, activeOnly bool) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	UpdateRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) error

	ListStops(ctx context.Context, routeID int64) ([]domain.Stop, error)
	CreateStop(ctx context.Context, stop *domain.Stop) error
	DeleteStop(ctx context.Context, id int64) error

	ListTimetables(ctx context.Context, routeID int64) ([]domain.Timetable, error)
	CreateTimetable(ctx context.Context, tt *domain.Timetable) error
	DeleteTimetable(ctx context.Context, id int64) error
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListRoutes(ctx context.Context, activeOnly bool) ([]domain.Route, error) {
	query := `SELECT id, name, code, description, active FROM routes ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, code, description, active FROM routes WHERE active ORDER BY name`
	}
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Code, &rt.Description, &rt.Active); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGCatalogRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	var rt domain.Route
	err := r.db.QueryRow(ctx, `SELECT id, name, code, description, active FROM routes WHERE id = $1`, id).
		Scan(&rt.ID, &rt.Name, &rt.Code, &rt.Description, &rt.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("route not found")
		}
		return nil, err
	}
	return &rt, nil
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	return r.db.QueryRow(ctx, `INSERT INTO routes (name, code, description, active)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		route.Name, route.Code, route.Description, route.Active).Scan(&route.ID)
}

func (r *PGCatalogRepository) UpdateRoute(ctx context.Context, route *domain.Route) error {
	cmd, err := r.db.Exec(ctx, `UPDATE routes SET name = $1, code = $2, description = $3, active = $4 WHERE id = $5`,
		route.Name, route.Code, route.Description, route.Active, route.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("route not found")
	}
	return nil
}

func (r *PGCatalogRepository) DeleteRoute(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("route not found")
	}
	return nil
}

func (r *PGCatalogRepository) ListStops(ctx context.Context, routeID int64) ([]domain.Stop, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, location, route_id FROM stops WHERE route_id = $1 ORDER BY name`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0)
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Location, &s.RouteID); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r *PGCatalogRepository) CreateStop(ctx context.Context, stop *domain.Stop) error {
	return r.db.QueryRow(ctx, `INSERT INTO stops (name, code, location, route_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		stop.Name, stop.Code, stop.Location, stop.RouteID).Scan(&stop.ID)
}

func (r *PGCatalogRepository) DeleteStop(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM stops WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("stop not found")
	}
	return nil
}

func (r *PGCatalogRepository) ListTimetables(ctx context.Context, routeID int64) ([]domain.Timetable, error) {
	rows, err := r.db.Query(ctx, `SELECT id, route_id, stop_id, arrival_time, departure_time
		FROM timetables WHERE route_id = $1 ORDER BY arrival_time`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timetables := make([]domain.Timetable, 0)
	for rows.Next() {
		var tt domain.Timetable
		if err := rows.Scan(&tt.ID, &tt.RouteID, &tt.StopID, &tt.ArrivalTime, &tt.DepartureTime); err != nil {
			return nil, err
		}
		timetables = append(timetables, tt)
	}
	return timetables, rows.Err()
}

func (r *PGCatalogRepository) CreateTimetable(ctx context.Context, tt *domain.Timetable) error {
	return r.db.QueryRow(ctx, `INSERT INTO timetables (route_id, stop_id, arrival_time, departure_time)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		tt.RouteID, tt.StopID, tt.ArrivalTime, tt.DepartureTime).Scan(&tt.ID)
}

func (r *PGCatalogRepository) DeleteTimetable(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("timetable not found")
	}
	return nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
