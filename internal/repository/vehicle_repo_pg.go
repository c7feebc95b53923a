package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/internal/domain"
)

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, vehicle_type, capacity, active FROM vehicles ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Code, &v.Type, &v.Capacity, &v.Active); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRow(ctx, `SELECT id, code, vehicle_type, capacity, active FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Code, &v.Type, &v.Capacity, &v.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("vehicle not found")
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT route_id FROM vehicle_routes WHERE vehicle_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var routeID int64
		if err := rows.Scan(&routeID); err != nil {
			return nil, err
		}
		v.RouteIDs = append(v.RouteIDs, routeID)
	}
	return &v, rows.Err()
}

func (r *PGVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO vehicles (code, vehicle_type, capacity, active)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		vehicle.Code, vehicle.Type, vehicle.Capacity, vehicle.Active).Scan(&vehicle.ID)
	if err != nil {
		return err
	}

	if err := replaceVehicleRoutes(ctx, tx, vehicle.ID, vehicle.RouteIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE vehicles SET code = $1, vehicle_type = $2, capacity = $3, active = $4
		WHERE id = $5`, vehicle.Code, vehicle.Type, vehicle.Capacity, vehicle.Active, vehicle.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("vehicle not found")
	}

	if err := replaceVehicleRoutes(ctx, tx, vehicle.ID, vehicle.RouteIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGVehicleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("vehicle not found")
	}
	return nil
}

func replaceVehicleRoutes(ctx context.Context, tx pgx.Tx, vehicleID int64, routeIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM vehicle_routes WHERE vehicle_id = $1`, vehicleID); err != nil {
		return err
	}
	for _, routeID := range routeIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO vehicle_routes (vehicle_id, route_id) VALUES ($1, $2)`, vehicleID, routeID); err != nil {
			return err
		}
	}
	return nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
