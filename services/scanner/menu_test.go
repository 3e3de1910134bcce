package scanner

import (
	"context"
	"testing"
	"time"

	"nutrivida/models"

	"go.uber.org/zap"
)

func TestDailyMenuScannerOncePerDay(t *testing.T) {
	morning := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	f := newMealFixture()
	f.addPlan("2025-01-20",
		models.Meal{ID: "meal-1", Type: models.MealDesayuno, Name: "Avena", Time: "08:00"},
		models.Meal{ID: "meal-2", Type: models.MealAlmuerzo, Name: "Pollo", Time: "13:00"},
	)

	sc := NewDailyMenuScanner(f.plans, f.patients, f.ledger, f.disp, zap.NewNop())

	first, err := sc.scan(context.Background(), morning)
	if err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if first.Dispatched != 1 {
		t.Fatalf("first scan dispatched = %d, want 1", first.Dispatched)
	}

	// Same calendar day, hours later: the date-scoped key suppresses it.
	second, err := sc.scan(context.Background(), morning.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if second.Dispatched != 0 {
		t.Errorf("same-day rerun dispatched = %d, want 0", second.Dispatched)
	}
}

func TestDailyMenuScannerNextDayIsFresh(t *testing.T) {
	f := newMealFixture()
	f.addPlan("2025-01-20", models.Meal{ID: "meal-1", Type: models.MealDesayuno, Name: "Avena", Time: "08:00"})
	f.plans.plans[0].Days = append(f.plans.plans[0].Days, models.PlanDay{
		ID:    "day-2",
		Date:  "2025-01-21",
		Meals: []models.Meal{{ID: "meal-3", Type: models.MealDesayuno, Name: "Tostadas", Time: "08:00"}},
	})

	sc := NewDailyMenuScanner(f.plans, f.patients, f.ledger, f.disp, zap.NewNop())

	day1 := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	if _, err := sc.scan(context.Background(), day1); err != nil {
		t.Fatalf("day-1 scan failed: %v", err)
	}
	res, err := sc.scan(context.Background(), day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("day-2 scan failed: %v", err)
	}
	if res.Dispatched != 1 {
		t.Errorf("next-day scan dispatched = %d, want 1", res.Dispatched)
	}
	if len(f.disp.sent) != 2 {
		t.Errorf("total notifications = %d, want 2", len(f.disp.sent))
	}
}

func TestDailyMenuScannerSkipsEmptyDay(t *testing.T) {
	f := newMealFixture()
	f.addPlan("2025-01-20") // day exists but has no meals

	sc := NewDailyMenuScanner(f.plans, f.patients, f.ledger, f.disp, zap.NewNop())
	res, err := sc.scan(context.Background(), time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if res.Dispatched != 0 {
		t.Errorf("dispatched = %d, want 0 for a day without meals", res.Dispatched)
	}
}
