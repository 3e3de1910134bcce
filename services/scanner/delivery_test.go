package scanner

import (
	"context"
	"testing"
	"time"

	"nutrivida/models"

	"go.uber.org/zap"
)

func TestDeliveryScannerExactDayMatch(t *testing.T) {
	now := time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)

	f := newMealFixture()
	deliveries := &fakeDeliveryRepo{calendars: []models.DeliveryCalendar{
		{ID: "cal-tomorrow", PatientID: "pat-1", ContractID: "ctr-1", StartDate: "2025-01-21"},
		{ID: "cal-today", PatientID: "pat-1", ContractID: "ctr-2", StartDate: "2025-01-20"},
		{ID: "cal-later", PatientID: "pat-1", ContractID: "ctr-3", StartDate: "2025-01-23"},
	}}

	sc := NewDeliveryScanner(deliveries, f.patients, f.ledger, f.disp, zap.NewNop())
	res, err := sc.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 1 {
		t.Fatalf("dispatched = %d, want 1", res.Dispatched)
	}
	if !f.ledger.entries[ledgerKey("entrega_proxima_2025-01-21", "cal-tomorrow", models.EntityCalendarioEntrega, "user-1")] {
		t.Error("ledger entry missing for tomorrow's calendar")
	}
}

func TestDeliveryScannerIsIdempotent(t *testing.T) {
	now := time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)

	f := newMealFixture()
	deliveries := &fakeDeliveryRepo{calendars: []models.DeliveryCalendar{
		{ID: "cal-1", PatientID: "pat-1", ContractID: "ctr-1", StartDate: "2025-01-21"},
	}}

	sc := NewDeliveryScanner(deliveries, f.patients, f.ledger, f.disp, zap.NewNop())
	if _, err := sc.scan(context.Background(), now); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	res, err := sc.scan(context.Background(), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if res.Dispatched != 0 {
		t.Errorf("second scan dispatched = %d, want 0", res.Dispatched)
	}
	if len(f.disp.sent) != 1 {
		t.Errorf("total notifications = %d, want 1", len(f.disp.sent))
	}
}

func TestDeliveryScannerSkipsUnknownRecipient(t *testing.T) {
	now := time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)

	f := newMealFixture()
	f.patients.patients["pat-2"] = &models.Patient{ID: "pat-2", Name: "Luis"} // no user account
	deliveries := &fakeDeliveryRepo{calendars: []models.DeliveryCalendar{
		{ID: "cal-1", PatientID: "pat-2", ContractID: "ctr-1", StartDate: "2025-01-21"},
	}}

	sc := NewDeliveryScanner(deliveries, f.patients, f.ledger, f.disp, zap.NewNop())
	res, err := sc.scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 0 || res.Skipped != 1 {
		t.Errorf("got dispatched=%d skipped=%d, want 0 and 1", res.Dispatched, res.Skipped)
	}
}
