package scanner

import (
	"context"
	"errors"

	trackingRepo "nutrivida/database/repository/tracking"
	"nutrivida/models"
	"nutrivida/services/notification"

	"go.uber.org/zap"
)

// Result summarizes one scan run.
type Result struct {
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Errors     int `json:"errors"`
}

// Scanner is a periodic batch job: find entities in a time window, decide
// per entity whether a notification is owed, dispatch at most once.
// Scan takes no parameters and is safe to invoke repeatedly; the ledger
// makes re-runs no-ops.
type Scanner interface {
	Name() string
	Scan(ctx context.Context) (Result, error)
}

// emitter is the shared dedup-then-dispatch step every scanner ends with.
type emitter struct {
	ledger     trackingRepo.TrackingRepository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

// emit sends n to the recipient unless the ledger already has an entry
// for the tuple. The ledger is only written after the dispatcher confirms
// persistence; a duplicate-key rejection on that write means a concurrent
// run won the race and is treated as success. Returns whether a
// notification actually went out.
func (e *emitter) emit(ctx context.Context, key EventKey, entityID, entityKind, recipientUserID, fcmToken string, n *models.Notification) (bool, error) {
	if recipientUserID == "" {
		return false, nil
	}

	eventType := key.String()
	sent, err := e.ledger.WasSent(ctx, eventType, entityID, entityKind, recipientUserID)
	if err != nil {
		return false, err
	}
	if sent {
		return false, nil
	}

	if err := e.dispatcher.Dispatch(ctx, n, fcmToken); err != nil {
		return false, err
	}

	if err := e.ledger.Record(ctx, eventType, entityID, entityKind, recipientUserID); err != nil {
		if errors.Is(err, trackingRepo.ErrAlreadyRecorded) {
			e.logger.Debug("tracking entry already recorded by a concurrent run",
				zap.String("eventType", eventType),
				zap.String("entityId", entityID))
			return true, nil
		}
		return true, err
	}
	return true, nil
}
