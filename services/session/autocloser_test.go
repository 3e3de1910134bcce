package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"nutrivida/models"

	"go.uber.org/zap"
)

func TestAutoCloserClosesStaleSessions(t *testing.T) {
	now := time.Date(2025, 2, 3, 11, 0, 0, 0, time.UTC)
	join := now.Add(-40 * time.Minute)

	repo := &fakeSessionRepo{sessions: []models.Session{{
		ID:          "ses-stale",
		PatientID:   "pat-1",
		Type:        models.SessionVideollamada,
		State:       models.SessionEnCurso,
		ScheduledAt: now.Add(-2 * time.Hour),
		LastJoinAt:  &join,
	}}}

	ac := NewAutoCloser(repo, zap.NewNop())
	res, err := ac.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 1 {
		t.Fatalf("closed = %d, want 1", res.Dispatched)
	}

	got := repo.sessions[0]
	if got.State != models.SessionCompletada {
		t.Errorf("state = %s, want COMPLETADA", got.State)
	}
	if len(got.Notes) != 1 || !strings.Contains(got.Notes[0].Text, "Cerrada automáticamente") {
		t.Errorf("audit note missing or wrong: %v", got.Notes)
	}
}

func TestAutoCloserLeavesRecentActivityAlone(t *testing.T) {
	now := time.Date(2025, 2, 3, 11, 0, 0, 0, time.UTC)
	join := now.Add(-10 * time.Minute)

	repo := &fakeSessionRepo{sessions: []models.Session{{
		ID:          "ses-live",
		PatientID:   "pat-1",
		State:       models.SessionEnCurso,
		ScheduledAt: now.Add(-2 * time.Hour),
		LastJoinAt:  &join,
	}}}

	ac := NewAutoCloser(repo, zap.NewNop())
	res, err := ac.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 0 {
		t.Errorf("closed = %d, want 0", res.Dispatched)
	}
	if repo.sessions[0].State != models.SessionEnCurso {
		t.Errorf("state = %s, want EN_CURSO untouched", repo.sessions[0].State)
	}
}

func TestAutoCloserFallsBackToScheduledTime(t *testing.T) {
	now := time.Date(2025, 2, 3, 11, 0, 0, 0, time.UTC)

	// No join was ever recorded; the scheduled time is the only signal.
	repo := &fakeSessionRepo{sessions: []models.Session{{
		ID:          "ses-nojoin",
		PatientID:   "pat-1",
		State:       models.SessionEnCurso,
		ScheduledAt: now.Add(-45 * time.Minute),
	}}}

	ac := NewAutoCloser(repo, zap.NewNop())
	res, err := ac.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 1 {
		t.Errorf("closed = %d, want 1", res.Dispatched)
	}
}

func TestAutoCloserIgnoresOtherStates(t *testing.T) {
	now := time.Date(2025, 2, 3, 11, 0, 0, 0, time.UTC)

	repo := &fakeSessionRepo{sessions: []models.Session{
		{ID: "ses-done", State: models.SessionCompletada, ScheduledAt: now.Add(-2 * time.Hour)},
		{ID: "ses-future", State: models.SessionProgramada, ScheduledAt: now.Add(time.Hour)},
	}}

	ac := NewAutoCloser(repo, zap.NewNop())
	res, err := ac.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 0 {
		t.Errorf("closed = %d, want 0", res.Dispatched)
	}
}
