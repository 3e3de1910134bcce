package deliveryRepo

import (
	"context"

	"nutrivida/models"
)

// DeliveryRepository reads delivery calendars.
type DeliveryRepository interface {
	// ListStartingOn returns calendars whose start date equals the given
	// "YYYY-MM-DD" date. Exact-day match, not a range.
	ListStartingOn(ctx context.Context, date string) ([]models.DeliveryCalendar, error)
}
