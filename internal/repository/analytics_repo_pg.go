package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteDelay struct {
	RouteName string        `json:"route"`
	AvgDelay  time.Duration `json:"avg_delay"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type VehicleTypeCount struct {
	VehicleType string `json:"vehicle_type"`
	Count       int    `json:"count"`
}

// AnalyticsRepository backs the staff analytics view: aggregate reads only.
type AnalyticsRepository interface {
	AverageDelayByRoute(ctx context.Context) ([]RouteDelay, error)
	FeedbackByCategory(ctx context.Context) ([]CategoryCount, error)
	VehiclesByType(ctx context.Context) ([]VehicleTypeCount, error)
}

type PGAnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) AnalyticsRepository {
	return &PGAnalyticsRepository{db: db}
}

func (r *PGAnalyticsRepository) AverageDelayByRoute(ctx context.Context) ([]RouteDelay, error) {
	rows, err := r.db.Query(ctx, `SELECT ro.name, AVG(EXTRACT(EPOCH FROM (t.actual_arrival - t.scheduled_arrival)))
		FROM trips t
		JOIN routes ro ON ro.id = t.route_id
		WHERE t.actual_arrival IS NOT NULL
		GROUP BY ro.name
		ORDER BY ro.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	delays := make([]RouteDelay, 0)
	for rows.Next() {
		var d RouteDelay
		var seconds float64
		if err := rows.Scan(&d.RouteName, &seconds); err != nil {
			return nil, err
		}
		d.AvgDelay = time.Duration(seconds * float64(time.Second))
		delays = append(delays, d)
	}
	return delays, rows.Err()
}

func (r *PGAnalyticsRepository) FeedbackByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM feedback GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]CategoryCount, 0)
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *PGAnalyticsRepository) VehiclesByType(ctx context.Context) ([]VehicleTypeCount, error) {
	rows, err := r.db.Query(ctx, `SELECT vehicle_type, COUNT(*) FROM vehicles GROUP BY vehicle_type ORDER BY vehicle_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]VehicleTypeCount, 0)
	for rows.Next() {
		var c VehicleTypeCount
		if err := rows.Scan(&c.VehicleType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

var _ AnalyticsRepository = (*PGAnalyticsRepository)(nil)
