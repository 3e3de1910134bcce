package scanner

import (
	"context"
	"fmt"
	"time"

	patientRepo "nutrivida/database/repository/patient"
	planRepo "nutrivida/database/repository/plan"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"
	"nutrivida/utils"

	"go.uber.org/zap"
)

// DailyMenuScanner sends each patient a morning summary of the day's
// plan. The date-scoped key gives it once-per-day semantics: re-running
// it on the same day is a no-op, the next day produces a fresh round.
type DailyMenuScanner struct {
	emitter
	plans    planRepo.PlanRepository
	patients patientRepo.PatientRepository
	now      func() time.Time
}

func NewDailyMenuScanner(
	plans planRepo.PlanRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *DailyMenuScanner {
	return &DailyMenuScanner{
		emitter:  emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		plans:    plans,
		patients: patients,
		now:      time.Now,
	}
}

func (s *DailyMenuScanner) Name() string { return "menu_diario" }

func (s *DailyMenuScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *DailyMenuScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	today := now.Format(utils.DateLayout)

	plans, err := s.plans.ListActiveWithDay(ctx, today)
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", s.Name(), err)
	}

	for i := range plans {
		plan := &plans[i]
		day := plan.DayFor(today)
		if day == nil || len(day.Meals) == 0 {
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

		key := DateKey(EventMenuDiario, today)
		sent, err := s.emit(ctx, key, day.ID, models.EntityPlanDia, patient.UserID, patient.FCMToken,
			notification.NewMenuDiario(patient.UserID, day))
		if err != nil {
			s.logger.Warn("failed to dispatch daily menu",
				zap.String("planDayId", day.ID), zap.Error(err))
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
