package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrivida/models"

	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	created []*models.Notification
	failure error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.failure != nil {
		return f.failure
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, *n)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range f.created {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return errors.New("not found")
}

func TestDispatchPersistsNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d, err := NewDefaultDispatcher(repo, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDefaultDispatcher failed: %v", err)
	}

	n := newNotification("user-1", models.NotificationInfo, "Hola", "Cuerpo", "/x")
	if err := d.Dispatch(context.Background(), n, ""); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].UserID != "user-1" {
		t.Errorf("persisted = %v, want the dispatched notification", repo.created)
	}
}

func TestDispatchSkipsEmptyRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d, err := NewDefaultDispatcher(repo, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDefaultDispatcher failed: %v", err)
	}

	n := newNotification("", models.NotificationInfo, "Hola", "Cuerpo", "/x")
	if err := d.Dispatch(context.Background(), n, "token"); err != nil {
		t.Fatalf("Dispatch of an unaddressed notification should be a no-op, got %v", err)
	}
	if err := d.Dispatch(context.Background(), nil, "token"); err != nil {
		t.Fatalf("Dispatch of a nil notification should be a no-op, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("persisted = %d notifications, want 0", len(repo.created))
	}
}

func TestDispatchPropagatesPersistenceFailure(t *testing.T) {
	boom := errors.New("write failed")
	repo := &fakeNotificationRepo{failure: boom}
	d, err := NewDefaultDispatcher(repo, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDefaultDispatcher failed: %v", err)
	}

	n := newNotification("user-1", models.NotificationInfo, "Hola", "Cuerpo", "/x")
	if err := d.Dispatch(context.Background(), n, ""); !errors.Is(err, boom) {
		t.Errorf("Dispatch error = %v, want wrapped %v", err, boom)
	}
}

func TestNewDefaultDispatcherRequiresRepo(t *testing.T) {
	if _, err := NewDefaultDispatcher(nil, nil, zap.NewNop()); err == nil {
		t.Error("constructor should reject a nil repository")
	}
}

func TestMessageKindMapping(t *testing.T) {
	patient := &models.Patient{ID: "pat-1", Name: "Ana"}
	sess := &models.Session{ID: "ses-1", ScheduledAt: time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)}
	meal := models.Meal{ID: "meal-1", Type: models.MealCena, Name: "Sopa", Time: "20:00"}
	day := &models.PlanDay{ID: "day-1", Date: "2025-02-03", Meals: []models.Meal{meal}}
	cal := models.DeliveryCalendar{ID: "cal-1", StartDate: "2025-02-04"}
	rec := &models.IntakeRecord{PatientID: "pat-1", MealType: models.MealCena, Date: "2025-02-03"}

	tests := []struct {
		name string
		n    *models.Notification
		want models.NotificationKind
	}{
		{"session scheduled", NewSesionCreada("u", sess), models.NotificationSuccess},
		{"session in 24h", NewSesionProxima24h("u", sess), models.NotificationInfo},
		{"session in 1h", NewSesionProxima1h("u", sess), models.NotificationInfo},
		{"session cancelled", NewSesionCancelada("u", sess), models.NotificationWarning},
		{"session rescheduled", NewSesionReprogramada("u", sess, sess.ScheduledAt), models.NotificationInfo},
		{"video call started", NewVideollamadaIniciada("u", sess), models.NotificationInfo},
		{"video call soon", NewVideollamadaProxima("u", sess), models.NotificationInfo},
		{"video call ended", NewVideollamadaFinalizada("u", sess), models.NotificationSuccess},
		{"participant joined", NewParticipanteUnido("u", sess, "Ana"), models.NotificationInfo},
		{"meal due", NewComidaProgramada("u", meal), models.NotificationInfo},
		{"meal missed", NewComidaOmitida("u", meal), models.NotificationWarning},
		{"intake logged", NewIngestaRegistrada("u", "Ana", rec), models.NotificationSuccess},
		{"daily menu", NewMenuDiario("u", day), models.NotificationInfo},
		{"menu changed", NewMenuModificado("u", &models.Plan{ID: "plan-1"}, "2025-02-03"), models.NotificationInfo},
		{"delivery tomorrow", NewEntregaProxima("u", cal), models.NotificationInfo},
		{"inactive patient", NewPacienteInactivo("u", patient, 8), models.NotificationWarning},
		{"missed meals alert", NewAlertaComidasOmitidas("u", patient, 2), models.NotificationWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.n.Kind != tt.want {
				t.Errorf("kind = %s, want %s", tt.n.Kind, tt.want)
			}
			if tt.n.UserID != "u" {
				t.Errorf("userID = %q, want %q", tt.n.UserID, "u")
			}
			if tt.n.ID == "" {
				t.Error("notification ID not assigned")
			}
			if tt.n.Read {
				t.Error("new notification must start unread")
			}
		})
	}
}
