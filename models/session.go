package models

import "time"

// SessionState is the lifecycle state of a professional session.
type SessionState string

const (
	SessionProgramada SessionState = "PROGRAMADA"
	SessionEnCurso    SessionState = "EN_CURSO"
	SessionCompletada SessionState = "COMPLETADA"
	SessionCancelada  SessionState = "CANCELADA"
)

// SessionType distinguishes in-person sessions from video calls.
type SessionType string

const (
	SessionPresencial   SessionType = "presencial"
	SessionVideollamada SessionType = "videollamada"
)

// SessionNote is one audit entry appended to a session, e.g. by the
// auto-closer when it forces a stale session to COMPLETADA.
type SessionNote struct {
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Session is an appointment between a patient and a professional.
// LastJoinAt is refreshed every time a participant joins (or re-joins)
// the call; the auto-closer uses it as the inactivity signal.
type Session struct {
	ID               string           `bson:"id" json:"id"`
	PatientID        string           `bson:"patient_id" json:"patient_id"`
	ProfessionalID   string           `bson:"professional_id" json:"professional_id"`
	ProfessionalKind ProfessionalKind `bson:"professional_kind" json:"professional_kind"`
	Type             SessionType      `bson:"type" json:"type"`
	State            SessionState     `bson:"state" json:"state"`
	ScheduledAt      time.Time        `bson:"scheduled_at" json:"scheduled_at"`
	LastJoinAt       *time.Time       `bson:"last_join_at,omitempty" json:"last_join_at,omitempty"`
	MeetingURL       string           `bson:"meeting_url,omitempty" json:"meeting_url,omitempty"`
	Notes            []SessionNote    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `bson:"updated_at" json:"updated_at"`
}
