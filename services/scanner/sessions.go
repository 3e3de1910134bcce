package scanner

import (
	"context"
	"fmt"
	"time"

	patientRepo "nutrivida/database/repository/patient"
	sessionRepo "nutrivida/database/repository/session"
	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"

	"go.uber.org/zap"
)

// SessionReminderScanner is one instance of the session reminder
// template: find PROGRAMADA sessions whose scheduled time falls in
// [now+lower, now+upper] and remind the patient and, when resolvable,
// the professional. The 24h, 1h and video-call scanners are all
// parameterizations of this type.
type SessionReminderScanner struct {
	emitter
	sessions sessionRepo.SessionRepository
	patients patientRepo.PatientRepository
	name     string
	kind     EventKind
	lower    time.Duration
	upper    time.Duration
	match    func(*models.Session) bool
	build    func(userID string, s *models.Session) *models.Notification
	now      func() time.Time
}

func newSessionReminderScanner(
	sessions sessionRepo.SessionRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *SessionReminderScanner {
	return &SessionReminderScanner{
		emitter:  emitter{ledger: ledger, dispatcher: dispatcher, logger: logger},
		sessions: sessions,
		patients: patients,
		now:      time.Now,
	}
}

// NewSession24hScanner reminds both parties one day ahead.
func NewSession24hScanner(
	sessions sessionRepo.SessionRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *SessionReminderScanner {
	s := newSessionReminderScanner(sessions, patients, ledger, dispatcher, logger)
	s.name = "sesiones_24h"
	s.kind = EventSesionProxima24h
	s.lower = 23 * time.Hour
	s.upper = 24 * time.Hour
	s.build = notification.NewSesionProxima24h
	return s
}

// NewSession1hScanner reminds both parties shortly before the session.
func NewSession1hScanner(
	sessions sessionRepo.SessionRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *SessionReminderScanner {
	s := newSessionReminderScanner(sessions, patients, ledger, dispatcher, logger)
	s.name = "sesiones_1h"
	s.kind = EventSesionProxima1h
	s.lower = 50 * time.Minute
	s.upper = 60 * time.Minute
	s.build = notification.NewSesionProxima1h
	return s
}

// NewVideoCallScanner warns video-call participants minutes before start.
func NewVideoCallScanner(
	sessions sessionRepo.SessionRepository,
	patients patientRepo.PatientRepository,
	ledger trackingRepo.TrackingRepository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *SessionReminderScanner {
	s := newSessionReminderScanner(sessions, patients, ledger, dispatcher, logger)
	s.name = "videollamadas"
	s.kind = EventVideollamadaProxima
	s.lower = 3 * time.Minute
	s.upper = 5 * time.Minute
	s.match = func(sess *models.Session) bool { return sess.Type == models.SessionVideollamada }
	s.build = notification.NewVideollamadaProxima
	return s
}

func (s *SessionReminderScanner) Name() string { return s.name }

func (s *SessionReminderScanner) Scan(ctx context.Context) (Result, error) {
	return s.scan(ctx, s.now())
}

func (s *SessionReminderScanner) scan(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	sessions, err := s.sessions.ListScheduledBetween(ctx, now.Add(s.lower), now.Add(s.upper))
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", s.Name(), err)
	}

	for i := range sessions {
		sess := &sessions[i]
		if s.match != nil && !s.match(sess) {
			continue
		}
		s.notifyParticipants(ctx, sess, &res)
	}

	s.logger.Info("scan complete",
		zap.String("scanner", s.Name()),
		zap.Int("dispatched", res.Dispatched),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors))
	return res, nil
}

// notifyParticipants reminds the patient and the assigned professional.
// Each recipient is deduplicated independently under the same key, so a
// failure on one never blocks the other.
func (s *SessionReminderScanner) notifyParticipants(ctx context.Context, sess *models.Session, res *Result) {
	key := FixedKey(s.kind)

	patient, err := s.patients.GetByID(ctx, sess.PatientID)
	if err != nil {
		s.logger.Warn("failed to resolve patient for session",
			zap.String("sessionId", sess.ID), zap.Error(err))
		res.Errors++
	} else {
		sent, err := s.emit(ctx, key, sess.ID, models.EntitySesion, patient.UserID, patient.FCMToken,
			s.build(patient.UserID, sess))
		switch {
		case err != nil:
			s.logger.Warn("failed to dispatch session reminder",
				zap.String("sessionId", sess.ID), zap.Error(err))
			res.Errors++
		case sent:
			res.Dispatched++
		default:
			res.Skipped++
		}
	}

	if sess.ProfessionalID == "" {
		return
	}
	prof, err := s.patients.GetProfessional(ctx, sess.ProfessionalKind, sess.ProfessionalID)
	if err != nil {
		s.logger.Warn("failed to resolve professional for session",
			zap.String("sessionId", sess.ID), zap.Error(err))
		res.Errors++
		return
	}
	sent, err := s.emit(ctx, key, sess.ID, models.EntitySesion, prof.RecipientUserID(), prof.FCMToken,
		s.build(prof.RecipientUserID(), sess))
	switch {
	case err != nil:
		s.logger.Warn("failed to dispatch session reminder",
			zap.String("sessionId", sess.ID), zap.Error(err))
		res.Errors++
	case sent:
		res.Dispatched++
	default:
		res.Skipped++
	}
}
