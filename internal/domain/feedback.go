package domain

import "time"

type FeedbackCategory string

const (
	FeedbackCategoryDelay       FeedbackCategory = "delay"
	FeedbackCategoryComfort     FeedbackCategory = "comfort"
	FeedbackCategoryCleanliness FeedbackCategory = "cleanliness"
	FeedbackCategoryOther       FeedbackCategory = "other"
)

func (c FeedbackCategory) Valid() bool {
	switch c {
	case FeedbackCategoryDelay, FeedbackCategoryComfort, FeedbackCategoryCleanliness, FeedbackCategoryOther:
		return true
	}
	return false
}

type Feedback struct {
	ID          int64
	UserID      *int64
	RouteID     *int64
	TripID      *int64
	Category    FeedbackCategory
	Description string
	Resolved    bool
	SubmittedAt time.Time
}
