package scanner

import (
	"context"
	"fmt"
	"time"

	intakeRepo "nutrivida/database/repository/intake"
	patientRepo "nutrivida/database/repository/patient"
	planRepo "nutrivida/database/repository/plan"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"
	"nutrivida/utils"

	"go.uber.org/zap"
)

const (
	// mealDueWindow is how far ahead the due scanner looks: a meal is
	// announced when its recommended time falls in [now, now+15m].
	mealDueWindow = 15 * time.Minute
	// missedMealThreshold is how long after the recommended time a meal
	// without an intake record counts as missed.
	missedMealThreshold = 30 * time.Minute
	// missedMealEscalation is the per-run detection count at which the
	// patient's nutritionist is alerted.
	missedMealEscalation = 2
)

// MealDueScanner announces meals whose recommended time has just arrived.
type MealDueScanner struct {
	emitter
	plans    planRepo.PlanRepository
	patients patientRepo.PatientRepository
	intakes  intakeRepo.IntakeRepository
	now      func() time.Time
}

func NewMealDueScanner(
	plans planRepo.PlanRepository,
	patients patientRepo.PatientRepository,
	intakes intakeRepo.IntakeRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *MealDueScanner {
	return &MealDueScanner{
		emitter:  emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		plans:    plans,
		patients: patients,
		intakes:  intakes,
		now:      time.Now,
	}
}

func (s *MealDueScanner) Name() string { return "comidas_programadas" }

// Scan runs one pass. The timestamp is captured once here and threaded
// through every window comparison and key construction.
func (s *MealDueScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *MealDueScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	today := now.Format(utils.DateLayout)

	plans, err := s.plans.ListActiveWithDay(ctx, today)
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", s.Name(), err)
	}

	for i := range plans {
		plan := &plans[i]
		day := plan.DayFor(today)
		if day == nil {
			continue
		}
		patient, err := s.patients.GetByID(ctx, plan.PatientID)
		if err != nil {
			s.logger.Warn("failed to resolve patient for plan",
				zap.String("planId", plan.ID), zap.Error(err))
			res.Errors++
			continue
		}
		if patient.UserID == "" {
			res.Skipped++
			continue
		}

		for _, meal := range day.Meals {
			sent, err := s.processMeal(ctx, now, day, meal, patient)
			if err != nil {
				s.logger.Warn("failed to process meal",
					zap.String("mealId", meal.ID), zap.Error(err))
				res.Errors++
				continue
			}
			if sent {
				res.Dispatched++
			} else {
				res.Skipped++
			}
		}
	}

	s.logger.Info("scan complete",
		zap.String("scanner", s.Name()),
		zap.Int("dispatched", res.Dispatched),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors))
	return res, nil
}

func (s *MealDueScanner) processMeal(ctx context.Context, now time.Time, day *models.PlanDay, meal models.Meal, patient *models.Patient) (bool, error) {
	at, err := meal.ScheduledAt(day.Date, now.Location())
	if err != nil {
		return false, err
	}
	if at.Before(now) || at.After(now.Add(mealDueWindow)) {
		return false, nil
	}

	logged, err := s.intakes.Exists(ctx, patient.ID, meal.Type, day.Date)
	if err != nil {
		return false, err
	}
	if logged {
		// Patient already ate and logged it; no reminder owed.
		return false, nil
	}

	key := DateKey(EventComidaProgramada, day.Date)
	return s.emit(ctx, key, meal.ID, models.EntityComida, patient.UserID, patient.FCMToken,
		notification.NewComidaProgramada(patient.UserID, meal))
}

// MealMissedScanner follows up on meals whose recommended time passed
// more than 30 minutes ago without an intake record, and escalates to
// the nutritionist when one patient accumulates several misses in a run.
type MealMissedScanner struct {
	emitter
	plans    planRepo.PlanRepository
	patients patientRepo.PatientRepository
	intakes  intakeRepo.IntakeRepository
	now      func() time.Time
}

func NewMealMissedScanner(
	plans planRepo.PlanRepository,
	patients patientRepo.PatientRepository,
	intakes intakeRepo.IntakeRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *MealMissedScanner {
	return &MealMissedScanner{
		emitter:  emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		plans:    plans,
		patients: patients,
		intakes:  intakes,
		now:      time.Now,
	}
}

func (s *MealMissedScanner) Name() string { return "comidas_omitidas" }

func (s *MealMissedScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *MealMissedScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	today := now.Format(utils.DateLayout)
	cutoff := now.Add(-missedMealThreshold)

	plans, err := s.plans.ListActiveWithDay(ctx, today)
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", s.Name(), err)
	}

	for i := range plans {
		plan := &plans[i]
		day := plan.DayFor(today)
		if day == nil {
			continue
		}
		patient, err := s.patients.GetByID(ctx, plan.PatientID)
		if err != nil {
			s.logger.Warn("failed to resolve patient for plan",
				zap.String("planId", plan.ID), zap.Error(err))
			res.Errors++
			continue
		}
		if patient.UserID == "" {
			res.Skipped++
			continue
		}

		// The meal's schedule is anchored on the day-plan's own date,
		// never on wall-clock "today".
		missed := 0
		for _, meal := range day.Meals {
			at, err := meal.ScheduledAt(day.Date, now.Location())
			if err != nil {
				s.logger.Warn("failed to process meal",
					zap.String("mealId", meal.ID), zap.Error(err))
				res.Errors++
				continue
			}
			if !at.Before(cutoff) {
				continue
			}
			logged, err := s.intakes.Exists(ctx, patient.ID, meal.Type, day.Date)
			if err != nil {
				s.logger.Warn("failed to check intake for meal",
					zap.String("mealId", meal.ID), zap.Error(err))
				res.Errors++
				continue
			}
			if logged {
				res.Skipped++
				continue
			}
			missed++

			key := DateKey(EventComidaOmitida, day.Date)
			sent, err := s.emit(ctx, key, meal.ID, models.EntityComida, patient.UserID, patient.FCMToken,
				notification.NewComidaOmitida(patient.UserID, meal))
			if err != nil {
				s.logger.Warn("failed to dispatch missed-meal follow-up",
					zap.String("mealId", meal.ID), zap.Error(err))
				res.Errors++
				continue
			}
			if sent {
				res.Dispatched++
			} else {
				res.Skipped++
			}
		}

		if missed >= missedMealEscalation {
			s.escalate(ctx, patient, missed, day.Date, &res)
		}
	}

	s.logger.Info("scan complete",
		zap.String("scanner", s.Name()),
		zap.Int("dispatched", res.Dispatched),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors))
	return res, nil
}

// escalate alerts the patient's nutritionist, deduplicated separately
// from the patient-facing follow-ups.
func (s *MealMissedScanner) escalate(ctx context.Context, patient *models.Patient, missed int, date string, res *Result) {
	if patient.NutricionistaID == "" {
		res.Skipped++
		return
	}
	prof, err := s.patients.GetProfessional(ctx, models.KindNutricionista, patient.NutricionistaID)
	if err != nil {
		s.logger.Warn("failed to resolve nutritionist for escalation",
			zap.String("patientId", patient.ID), zap.Error(err))
		res.Errors++
		return
	}

	key := DateKey(EventAlertaComidasOmitidas, date)
	sent, err := s.emit(ctx, key, patient.ID, models.EntityPaciente, prof.RecipientUserID(), prof.FCMToken,
		notification.NewAlertaComidasOmitidas(prof.RecipientUserID(), patient, missed))
	if err != nil {
		s.logger.Warn("failed to dispatch missed-meal escalation",
			zap.String("patientId", patient.ID), zap.Error(err))
		res.Errors++
		return
	}
	if sent {
		res.Dispatched++
	} else {
		res.Skipped++
	}
}
