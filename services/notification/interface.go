package notification

import (
	"context"

	"nutrivida/models"
)

// Dispatcher persists a user-facing notification and, when a device
// token is known, pushes it over FCM. Persistence failures are returned
// to the caller so the tracking ledger is only written after a confirmed
// dispatch; push failures are logged and swallowed.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *models.Notification, fcmToken string) error
}
