package planRepo

import (
	"context"

	"nutrivida/models"
)

// PlanRepository reads meal plans. The scanners only ever need active
// plans with a day for a concrete date; window filtering over the meals
// happens in the service layer.
type PlanRepository interface {
	GetByID(ctx context.Context, planID string) (*models.Plan, error)
	ListActiveWithDay(ctx context.Context, date string) ([]models.Plan, error)
}
