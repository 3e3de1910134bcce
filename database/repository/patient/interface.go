package patientRepo

import (
	"context"

	"nutrivida/models"
)

// PatientRepository resolves patients and their assigned professionals.
type PatientRepository interface {
	GetByID(ctx context.Context, patientID string) (*models.Patient, error)
	ListAll(ctx context.Context) ([]models.Patient, error)
	// GetProfessional resolves a professional of either kind by ID.
	GetProfessional(ctx context.Context, kind models.ProfessionalKind, professionalID string) (*models.Professional, error)
}
