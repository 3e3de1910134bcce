package scanner

import (
	"context"
	"fmt"
	"time"

	deliveryRepo "nutrivida/database/repository/delivery"
	patientRepo "nutrivida/database/repository/patient"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"
	"nutrivida/utils"

	"go.uber.org/zap"
)

// DeliveryScanner reminds patients of delivery calendars starting
// tomorrow. Exact-day match on the start date, not a range.
type DeliveryScanner struct {
	emitter
	deliveries deliveryRepo.DeliveryRepository
	patients   patientRepo.PatientRepository
	now        func() time.Time
}

func NewDeliveryScanner(
	deliveries deliveryRepo.DeliveryRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *DeliveryScanner {
	return &DeliveryScanner{
		emitter:    emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		deliveries: deliveries,
		patients:   patients,
		now:        time.Now,
	}
}

func (s *DeliveryScanner) Name() string { return "entregas" }

func (s *DeliveryScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *DeliveryScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	tomorrow := now.AddDate(0, 0, 1).Format(utils.DateLayout)

	calendars, err := s.deliveries.ListStartingOn(ctx, tomorrow)
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", s.Name(), err)
	}

	for _, cal := range calendars {
		patient, err := s.patients.GetByID(ctx, cal.PatientID)
		if err != nil {
			s.logger.Warn("failed to resolve patient for delivery",
				zap.String("calendarId", cal.ID), zap.Error(err))
			res.Errors++
			continue
		}
		if patient.UserID == "" {
			res.Skipped++
			continue
		}

		key := DateKey(EventEntregaProxima, cal.StartDate)
		sent, err := s.emit(ctx, key, cal.ID, models.EntityCalendarioEntrega, patient.UserID, patient.FCMToken,
			notification.NewEntregaProxima(patient.UserID, cal))
		if err != nil {
			s.logger.Warn("failed to dispatch delivery reminder",
				zap.String("calendarId", cal.ID), zap.Error(err))
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
