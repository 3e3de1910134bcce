package trackingRepo

import (
	"context"
	"errors"
)

// ErrAlreadyRecorded is returned by Record when the 4-tuple already has a
// ledger entry. Callers treat it as "another run got there first", never
// as a failure.
var ErrAlreadyRecorded = errors.New("notification already recorded for this event and recipient")

// TrackingRepository is the notification dedup ledger. Record is an
// atomic insert-if-absent: the unique index on the 4-tuple is the only
// arbiter under concurrent scans. WasSent exists so scanners can skip
// dispatch work cheaply, but correctness never depends on it.
type TrackingRepository interface {
	WasSent(ctx context.Context, eventType, entityID, entityKind, recipientUserID string) (bool, error)
	Record(ctx context.Context, eventType, entityID, entityKind, recipientUserID string) error
}
