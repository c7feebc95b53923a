package feedback

import (
	"context"
	"errors"

	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/repository"
)

const defaultListLimit = 50

type FeedbackService struct {
	feedback  repository.FeedbackRepository
	analytics repository.AnalyticsRepository
}

type Analytics struct {
	AvgDelays     []repository.RouteDelay       `json:"avg_delays"`
	FeedbackStats []repository.CategoryCount    `json:"feedback_stats"`
	VehicleCounts []repository.VehicleTypeCount `json:"vehicle_counts"`
}

func NewFeedbackService(feedback repository.FeedbackRepository, analytics repository.AnalyticsRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, analytics: analytics}
}

func (s *FeedbackService) Submit(ctx context.Context, fb *domain.Feedback) error {
	if fb.Description == "" {
		return domain.NewFieldError("description", errors.New("description is required"))
	}
	if fb.Category == "" {
		fb.Category = domain.FeedbackCategoryOther
	}
	if !fb.Category.Valid() {
		return domain.NewFieldError("category", errors.New("unknown feedback category"))
	}
	return s.feedback.Create(ctx, fb)
}

func (s *FeedbackService) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.feedback.List(ctx, limit)
}

func (s *FeedbackService) Resolve(ctx context.Context, id int64) error {
	return s.feedback.Resolve(ctx, id)
}

// Overview assembles the staff analytics page data.
func (s *FeedbackService) Overview(ctx context.Context) (*Analytics, error) {
	delays, err := s.analytics.AverageDelayByRoute(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.analytics.FeedbackByCategory(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.analytics.VehiclesByType(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{AvgDelays: delays, FeedbackStats: stats, VehicleCounts: vehicles}, nil
}
