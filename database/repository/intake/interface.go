package intakeRepo

import (
	"context"
	"time"

	"nutrivida/models"
)

// IntakeRepository reads and writes intake (meal consumption) records.
type IntakeRepository interface {
	Create(ctx context.Context, rec *models.IntakeRecord) error
	// Exists reports whether the patient logged the given meal type on the
	// given "YYYY-MM-DD" date.
	Exists(ctx context.Context, patientID string, mealType models.MealType, date string) (bool, error)
	// LastLoggedAt returns the timestamp of the patient's most recent
	// intake, or the zero time if none exists.
	LastLoggedAt(ctx context.Context, patientID string) (time.Time, error)
}
