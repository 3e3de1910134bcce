package notification

import (
	"context"
	"fmt"

	notificationRepo "nutrivida/database/repository/notification"
	"nutrivida/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultDispatcher is the production implementation.
type DefaultDispatcher struct {
	Repo   notificationRepo.NotificationRepository
	FCM    *messaging.Client
	Logger *zap.Logger
}

func NewDefaultDispatcher(repo notificationRepo.NotificationRepository, fcm *messaging.Client, logger *zap.Logger) (*DefaultDispatcher, error) {
	if repo == nil {
		return nil, fmt.Errorf("dispatcher initialization error: notification repository is nil")
	}
	return &DefaultDispatcher{Repo: repo, FCM: fcm, Logger: logger}, nil
}

// Dispatch persists the notification, then attempts a best-effort push.
// A notification addressed to nobody is a silent skip, not an error: the
// entity simply has no resolvable account to talk to.
func (d *DefaultDispatcher) Dispatch(ctx context.Context, n *models.Notification, fcmToken string) error {
	if n == nil || n.UserID == "" {
		if d.Logger != nil {
			d.Logger.Debug("dispatch skipped: no resolvable recipient")
		}
		return nil
	}

	if err := d.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("dispatch: failed to persist notification for user %s: %w", n.UserID, err)
	}

	d.push(ctx, n, fcmToken)
	return nil
}

// push sends the FCM message when a client and token are available.
// Push delivery is strictly best-effort on top of the persisted record.
func (d *DefaultDispatcher) push(ctx context.Context, n *models.Notification, fcmToken string) {
	if d.FCM == nil || fcmToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"notificationId": n.ID,
			"kind":           string(n.Kind),
			"link":           n.Link,
		},
	}
	if _, err := d.FCM.Send(ctx, msg); err != nil && d.Logger != nil {
		d.Logger.Warn("dispatch: push failed",
			zap.String("userId", n.UserID),
			zap.Error(err))
	}
}
