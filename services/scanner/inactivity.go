package scanner

import (
	"context"
	"fmt"
	"time"

	intakeRepo "nutrivida/database/repository/intake"
	patientRepo "nutrivida/database/repository/patient"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"

	"go.uber.org/zap"
)

// inactivityThreshold is how long a patient can go without logging an
// intake before their nutritionist is alerted.
const inactivityThreshold = 7 * 24 * time.Hour

// InactivePatientScanner alerts nutritionists about patients who have
// stopped logging intakes. The date-scoped key repeats the alert once a
// day while the patient stays quiet.
type InactivePatientScanner struct {
	emitter
	patients patientRepo.PatientRepository
	intakes  intakeRepo.IntakeRepository
	now      func() time.Time
}

func NewInactivePatientScanner(
	patients patientRepo.PatientRepository,
	intakes intakeRepo.IntakeRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *InactivePatientScanner {
	return &InactivePatientScanner{
		emitter:  emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		patients: patients,
		intakes:  intakes,
		now:      time.Now,
	}
}

func (s *InactivePatientScanner) Name() string { return "pacientes_inactivos" }

func (s *InactivePatientScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *InactivePatientScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	patients, err := s.patients.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: patient query failed: %w", s.Name(), err)
	}

	for i := range patients {
		patient := &patients[i]
		if patient.NutricionistaID == "" {
			continue
		}

		last, err := s.intakes.LastLoggedAt(ctx, patient.ID)
		if err != nil {
			s.logger.Warn("failed to fetch last intake",
				zap.String("patientId", patient.ID), zap.Error(err))
			res.Errors++
			continue
		}
		// Patients who never logged anything are measured from their
		// registration date so fresh accounts get a grace period.
		baseline := last
		if baseline.IsZero() {
			baseline = patient.CreatedAt
		}
		idle := now.Sub(baseline)
		if idle < inactivityThreshold {
			continue
		}

		prof, err := s.patients.GetProfessional(ctx, models.KindNutricionista, patient.NutricionistaID)
		if err != nil {
			s.logger.Warn("failed to resolve nutritionist",
				zap.String("patientId", patient.ID), zap.Error(err))
			res.Errors++
			continue
		}

		days := int(idle.Hours() / 24)
		key := DailyKey(EventPacienteInactivo, now)
		sent, err := s.emit(ctx, key, patient.ID, models.EntityPaciente, prof.RecipientUserID(), prof.FCMToken,
			notification.NewPacienteInactivo(prof.RecipientUserID(), patient, days))
		if err != nil {
			s.logger.Warn("failed to dispatch inactivity alert",
				zap.String("patientId", patient.ID), zap.Error(err))
			res.Errors++
			continue
		}
		if sent {
			res.Dispatched++
		} else {
			res.Skipped++
		}
	}

	s.logger.Info("scan complete",
		zap.String("scanner", s.Name()),
		zap.Int("dispatched", res.Dispatched),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors))
	return res, nil
}
