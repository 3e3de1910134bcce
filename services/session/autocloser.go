package session

import (
	"context"
	"fmt"
	"time"

	sessionRepo "nutrivida/database/repository/session"
	"nutrivida/models"
	"nutrivida/services/scanner"

	"go.uber.org/zap"
)

// staleSessionAge is how long an EN_CURSO session may sit without any
// join activity before the sweep force-completes it.
const staleSessionAge = 30 * time.Minute

// AutoCloser is the periodic sweep that force-transitions abandoned
// EN_CURSO sessions to COMPLETADA. It shares the scan-window shape of
// the notification scanners but writes session state directly instead of
// going through the tracking ledger.
type AutoCloser struct {
	Sessions sessionRepo.SessionRepository
	Logger   *zap.Logger

	now func() time.Time
}

func NewAutoCloser(sessions sessionRepo.SessionRepository, logger *zap.Logger) *AutoCloser {
	return &AutoCloser{Sessions: sessions, Logger: logger, now: time.Now}
}

func (a *AutoCloser) Name() string { return "cierre_sesiones" }

// Scan closes every stale session it finds, isolating per-session
// failures so one bad record never aborts the sweep.
func (a *AutoCloser) Scan(ctx context.Context) (scanner.Result, error) {
	return a.scan(ctx, a.now())
}

func (a *AutoCloser) scan(ctx context.Context, now time.Time) (scanner.Result, error) {
	var res scanner.Result
	cutoff := now.Add(-staleSessionAge)

	sessions, err := a.Sessions.ListInProgressInactiveSince(ctx, cutoff)
	if err != nil {
		return res, fmt.Errorf("%s: window query failed: %w", a.Name(), err)
	}

	for i := range sessions {
		sess := &sessions[i]
		if !CanTransition(sess.State, models.SessionCompletada) {
			// The query only returns EN_CURSO sessions, but the state may
			// have moved between the read and this write.
			res.Skipped++
			continue
		}
		note := &models.SessionNote{
			Text:      fmt.Sprintf("Cerrada automáticamente tras %d minutos sin actividad.", int(staleSessionAge.Minutes())),
			CreatedAt: now,
		}
		if err := a.Sessions.UpdateState(ctx, sess.ID, models.SessionCompletada, note); err != nil {
			a.Logger.Warn("failed to auto-close session",
				zap.String("sessionId", sess.ID), zap.Error(err))
			res.Errors++
			continue
		}
		res.Dispatched++
	}

	a.Logger.Info("scan complete",
		zap.String("scanner", a.Name()),
		zap.Int("closed", res.Dispatched),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors))
	return res, nil
}
