package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
	Resolve(ctx context.Context, id int64) error
}

type PGFeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) FeedbackRepository {
	return &PGFeedbackRepository{db: db}
}

func (r *PGFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	return r.db.QueryRow(ctx, `INSERT INTO feedback (user_id, route_id, trip_id, category, description)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, submitted_at`,
		fb.UserID, fb.RouteID, fb.TripID, fb.Category, fb.Description).
		Scan(&fb.ID, &fb.SubmittedAt)
}

func (r *PGFeedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, route_id, trip_id, category, description, resolved, submitted_at
		FROM feedback ORDER BY submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]domain.Feedback, 0)
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.RouteID, &fb.TripID, &fb.Category, &fb.Description, &fb.Resolved, &fb.SubmittedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}

func (r *PGFeedbackRepository) Resolve(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE feedback SET resolved = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("feedback not found")
	}
	return nil
}

var _ FeedbackRepository = (*PGFeedbackRepository)(nil)
