package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
)

// In-memory fakes for the repository interfaces. They keep the window
// and dedup logic testable without a database.

type fakeLedger struct {
	entries map[string]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string]bool)}
}

func ledgerKey(eventType, entityID, entityKind, recipientUserID string) string {
	return strings.Join([]string{eventType, entityID, entityKind, recipientUserID}, "|")
}

func (f *fakeLedger) WasSent(_ context.Context, eventType, entityID, entityKind, recipientUserID string) (bool, error) {
	return f.entries[ledgerKey(eventType, entityID, entityKind, recipientUserID)], nil
}

func (f *fakeLedger) Record(_ context.Context, eventType, entityID, entityKind, recipientUserID string) error {
	key := ledgerKey(eventType, entityID, entityKind, recipientUserID)
	if f.entries[key] {
		return trackingRepo.ErrAlreadyRecorded
	}
	f.entries[key] = true
	return nil
}

type fakeDispatcher struct {
	sent    []*models.Notification
	failure error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, n *models.Notification, _ string) error {
	if f.failure != nil {
		return f.failure
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakePlanRepo struct {
	plans []models.Plan
}

func (f *fakePlanRepo) GetByID(_ context.Context, planID string) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].ID == planID {
			return &f.plans[i], nil
		}
	}
	return nil, fmt.Errorf("plan %s not found", planID)
}

func (f *fakePlanRepo) ListActiveWithDay(_ context.Context, date string) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range f.plans {
		if p.Active && p.DayFor(date) != nil {
			out = append(out, p)
		}
	}
	return out, nil
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
	p, ok := f.patients[patientID]
	if !ok {
		return nil, fmt.Errorf("patient %s not found", patientID)
	}
	return p, nil
}

func (f *fakePatientRepo) ListAll(_ context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientRepo) GetProfessional(_ context.Context, kind models.ProfessionalKind, professionalID string) (*models.Professional, error) {
	p, ok := f.professionals[professionalID]
	if !ok || p.Kind != kind {
		return nil, fmt.Errorf("%s %s not found", kind, professionalID)
	}
	return p, nil
}

type fakeIntakeRepo struct {
	logged map[string]bool
	last   map[string]time.Time
}

func newFakeIntakeRepo() *fakeIntakeRepo {
	return &fakeIntakeRepo{logged: make(map[string]bool), last: make(map[string]time.Time)}
}

func intakeKey(patientID string, mealType models.MealType, date string) string {
	return strings.Join([]string{patientID, string(mealType), date}, "|")
}

func (f *fakeIntakeRepo) Create(_ context.Context, rec *models.IntakeRecord) error {
	f.logged[intakeKey(rec.PatientID, rec.MealType, rec.Date)] = true
	f.last[rec.PatientID] = rec.LoggedAt
	return nil
}

func (f *fakeIntakeRepo) Exists(_ context.Context, patientID string, mealType models.MealType, date string) (bool, error) {
	return f.logged[intakeKey(patientID, mealType, date)], nil
}

func (f *fakeIntakeRepo) LastLoggedAt(_ context.Context, patientID string) (time.Time, error) {
	return f.last[patientID], nil
}

type fakeSessionRepo struct {
	sessions []models.Session
}

func (f *fakeSessionRepo) GetByID(_ context.Context, sessionID string) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			return &f.sessions[i], nil
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

type fakeDeliveryRepo struct {
	calendars []models.DeliveryCalendar
}

func (f *fakeDeliveryRepo) ListStartingOn(_ context.Context, date string) ([]models.DeliveryCalendar, error) {
	var out []models.DeliveryCalendar
	for _, c := range f.calendars {
		if c.StartDate == date {
			out = append(out, c)
		}
	}
	return out, nil
}
