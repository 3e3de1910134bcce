package session

import (
	"context"
	"fmt"
	"time"

	patientRepo "nutrivida/database/repository/patient"
	sessionRepo "nutrivida/database/repository/session"
	"nutrivida/models"
	"nutrivida/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Participant identifies which side of a session performed an action.
type Participant string

const (
	ParticipantPaciente    Participant = "paciente"
	ParticipantProfesional Participant = "profesional"
)

// Service drives the session lifecycle. Every state write goes through
// the adjacency table, and lifecycle events fire their corresponding
// notifications directly (these are one-shot user actions, not scans,
// so they bypass the tracking ledger).
type Service struct {
	Sessions   sessionRepo.SessionRepository
	Patients   patientRepo.PatientRepository
	Dispatcher notification.Dispatcher
	Logger     *zap.Logger
}

// CreateInput is the payload for scheduling a new session.
type CreateInput struct {
	PatientID        string                  `json:"patient_id"`
	ProfessionalID   string                  `json:"professional_id"`
	ProfessionalKind models.ProfessionalKind `json:"professional_kind"`
	Type             models.SessionType      `json:"type"`
	ScheduledAt      time.Time               `json:"scheduled_at"`
	MeetingURL       string                  `json:"meeting_url"`
}

// Create schedules a session in PROGRAMADA and confirms it to the patient.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Session, error) {
	if in.PatientID == "" || in.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("create session: patient and scheduled time are required")
	}

	now := time.Now()
	sess := &models.Session{
		ID:               uuid.New().String(),
		PatientID:        in.PatientID,
		ProfessionalID:   in.ProfessionalID,
		ProfessionalKind: in.ProfessionalKind,
		Type:             in.Type,
		State:            models.SessionProgramada,
		ScheduledAt:      in.ScheduledAt,
		MeetingURL:       in.MeetingURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.notifyPatient(ctx, sess, func(userID string) *models.Notification {
		return notification.NewSesionCreada(userID, sess)
	})
	return sess, nil
}

// Start moves a session into EN_CURSO. Video calls announce the start to
// both participants.
func (s *Service) Start(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.transition(ctx, sessionID, models.SessionEnCurso, nil)
	if err != nil {
		return nil, err
	}
	if sess.Type == models.SessionVideollamada {
		s.notifyBoth(ctx, sess, func(userID string) *models.Notification {
			return notification.NewVideollamadaIniciada(userID, sess)
		})
	}
	return sess, nil
}

// Join refreshes the activity timestamp and tells the counterpart that
// someone connected.
func (s *Service) Join(ctx context.Context, sessionID string, who Participant, name string) (*models.Session, error) {
	sess, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != models.SessionEnCurso {
		return nil, &InvalidTransitionError{From: sess.State, To: models.SessionEnCurso}
	}
	if err := s.Sessions.TouchJoin(ctx, sessionID, time.Now()); err != nil {
		return nil, err
	}

	build := func(userID string) *models.Notification {
		return notification.NewParticipanteUnido(userID, sess, name)
	}
	if who == ParticipantPaciente {
		s.notifyProfessional(ctx, sess, build)
	} else {
		s.notifyPatient(ctx, sess, build)
	}
	return sess, nil
}

// Finish completes a session. Video calls close the loop with the patient.
func (s *Service) Finish(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.transition(ctx, sessionID, models.SessionCompletada, nil)
	if err != nil {
		return nil, err
	}
	if sess.Type == models.SessionVideollamada {
		s.notifyPatient(ctx, sess, func(userID string) *models.Notification {
			return notification.NewVideollamadaFinalizada(userID, sess)
		})
	}
	return sess, nil
}

// Cancel cancels a session and warns both participants.
func (s *Service) Cancel(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.transition(ctx, sessionID, models.SessionCancelada, nil)
	if err != nil {
		return nil, err
	}
	s.notifyBoth(ctx, sess, func(userID string) *models.Notification {
		return notification.NewSesionCancelada(userID, sess)
	})
	return sess, nil
}

// Reschedule moves a PROGRAMADA session to a new time and informs both
// participants.
func (s *Service) Reschedule(ctx context.Context, sessionID string, newTime time.Time) (*models.Session, error) {
	sess, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != models.SessionProgramada {
		return nil, fmt.Errorf("reschedule session %s: only PROGRAMADA sessions can move, state is %s", sessionID, sess.State)
	}
	if err := s.Sessions.UpdateSchedule(ctx, sessionID, newTime); err != nil {
		return nil, err
	}

	s.notifyBoth(ctx, sess, func(userID string) *models.Notification {
		return notification.NewSesionReprogramada(userID, sess, newTime)
	})
	sess.ScheduledAt = newTime
	return sess, nil
}

// transition validates the state change against the adjacency table
// before any write.
func (s *Service) transition(ctx context.Context, sessionID string, to models.SessionState, note *models.SessionNote) (*models.Session, error) {
	sess, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sess.State, to) {
		return nil, &InvalidTransitionError{From: sess.State, To: to}
	}
	if err := s.Sessions.UpdateState(ctx, sessionID, to, note); err != nil {
		return nil, err
	}
	sess.State = to
	return sess, nil
}

func (s *Service) notifyPatient(ctx context.Context, sess *models.Session, build func(userID string) *models.Notification) {
	patient, err := s.Patients.GetByID(ctx, sess.PatientID)
	if err != nil {
		s.Logger.Warn("failed to resolve patient for session notification",
			zap.String("sessionId", sess.ID), zap.Error(err))
		return
	}
	if patient.UserID == "" {
		return
	}
	if err := s.Dispatcher.Dispatch(ctx, build(patient.UserID), patient.FCMToken); err != nil {
		s.Logger.Warn("failed to dispatch session notification",
			zap.String("sessionId", sess.ID), zap.Error(err))
	}
}

func (s *Service) notifyProfessional(ctx context.Context, sess *models.Session, build func(userID string) *models.Notification) {
	if sess.ProfessionalID == "" {
		return
	}
	prof, err := s.Patients.GetProfessional(ctx, sess.ProfessionalKind, sess.ProfessionalID)
	if err != nil {
		s.Logger.Warn("failed to resolve professional for session notification",
			zap.String("sessionId", sess.ID), zap.Error(err))
		return
	}
	if prof.RecipientUserID() == "" {
		return
	}
	if err := s.Dispatcher.Dispatch(ctx, build(prof.RecipientUserID()), prof.FCMToken); err != nil {
		s.Logger.Warn("failed to dispatch session notification",
			zap.String("sessionId", sess.ID), zap.Error(err))
	}
}

func (s *Service) notifyBoth(ctx context.Context, sess *models.Session, build func(userID string) *models.Notification) {
	s.notifyPatient(ctx, sess, build)
	s.notifyProfessional(ctx, sess, build)
}
