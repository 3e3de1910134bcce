package session

import (
	"context"
	"fmt"
	"time"

	"nutrivida/models"
)

type fakeSessionRepo struct {
	sessions []models.Session
}

func (f *fakeSessionRepo) GetByID(_ context.Context, sessionID string) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("session %s not found", sessionID)
}

func (f *fakeSessionRepo) Create(_ context.Context, s *models.Session) error {
	f.sessions = append(f.sessions, *s)
	return nil
}

func (f *fakeSessionRepo) ListScheduledBetween(_ context.Context, from, to time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.State != models.SessionProgramada {
			continue
		}
		if s.ScheduledAt.Before(from) || s.ScheduledAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) ListInProgressInactiveSince(_ context.Context, cutoff time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.State != models.SessionEnCurso {
			continue
		}
		activity := s.ScheduledAt
		if s.LastJoinAt != nil {
			activity = *s.LastJoinAt
		}
		if activity.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateState(_ context.Context, sessionID string, state models.SessionState, note *models.SessionNote) error {
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			f.sessions[i].State = state
			if note != nil {
				f.sessions[i].Notes = append(f.sessions[i].Notes, *note)
			}
			return nil
		}
	}
	return fmt.Errorf("session %s not found", sessionID)
}

func (f *fakeSessionRepo) UpdateSchedule(_ context.Context, sessionID string, scheduledAt time.Time) error {
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			f.sessions[i].ScheduledAt = scheduledAt
			return nil
		}
	}
	return fmt.Errorf("session %s not found", sessionID)
}

func (f *fakeSessionRepo) TouchJoin(_ context.Context, sessionID string, at time.Time) error {
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			t := at
			f.sessions[i].LastJoinAt = &t
			return nil
		}
	}
	return fmt.Errorf("session %s not found", sessionID)
}

type fakePatientRepo struct {
	patients      map[string]*models.Patient
	professionals map[string]*models.Professional
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients:      make(map[string]*models.Patient),
		professionals: make(map[string]*models.Professional),
	}
}

func (f *fakePatientRepo) GetByID(_ context.Context, patientID string) (*models.Patient, error) {
	if p, ok := f.patients[patientID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("patient %s not found", patientID)
}

func (f *fakePatientRepo) ListAll(_ context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientRepo) GetProfessional(_ context.Context, kind models.ProfessionalKind, professionalID string) (*models.Professional, error) {
	if p, ok := f.professionals[professionalID]; ok && p.Kind == kind {
		return p, nil
	}
	return nil, fmt.Errorf("professional %s not found", professionalID)
}

type fakeDispatcher struct {
	sent []*models.Notification
}

func (f *fakeDispatcher) Dispatch(_ context.Context, n *models.Notification, _ string) error {
	f.sent = append(f.sent, n)
	return nil
}
