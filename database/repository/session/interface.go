package sessionRepo

import (
	"context"
	"time"

	"nutrivida/models"
)

// SessionRepository reads and mutates professional sessions.
type SessionRepository interface {
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	Create(ctx context.Context, s *models.Session) error
	// ListScheduledBetween returns PROGRAMADA sessions whose scheduled
	// time falls in [from, to].
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Session, error)
	// ListInProgressInactiveSince returns EN_CURSO sessions whose last
	// join timestamp is older than the cutoff (or that have none and were
	// started before it).
	ListInProgressInactiveSince(ctx context.Context, cutoff time.Time) ([]models.Session, error)
	UpdateState(ctx context.Context, sessionID string, state models.SessionState, note *models.SessionNote) error
	UpdateSchedule(ctx context.Context, sessionID string, scheduledAt time.Time) error
	TouchJoin(ctx context.Context, sessionID string, at time.Time) error
}
