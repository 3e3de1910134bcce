package models

import (
	"fmt"
	"time"
)

// MealType identifies which meal of the day a Meal entry is.
type MealType string

const (
	MealDesayuno MealType = "desayuno"
	MealAlmuerzo MealType = "almuerzo"
	MealMerienda MealType = "merienda"
	MealCena     MealType = "cena"
)

// Label returns the human-facing Spanish label used in notification copy.
func (m MealType) Label() string {
	switch m {
	case MealDesayuno:
		return "Desayuno"
	case MealAlmuerzo:
		return "Almuerzo"
	case MealMerienda:
		return "Merienda"
	case MealCena:
		return "Cena"
	}
	return string(m)
}

// Meal is one scheduled meal inside a plan day. Time is the recommended
// clock time in "HH:MM" 24-hour form; the date it applies to comes from
// the enclosing PlanDay.
type Meal struct {
	ID   string   `bson:"id" json:"id"`
	Type MealType `bson:"type" json:"type"`
	Name string   `bson:"name" json:"name"`
	Time string   `bson:"time" json:"time"`
	Kcal int      `bson:"kcal,omitempty" json:"kcal,omitempty"`
}

// ScheduledAt combines the owning day's date with the meal's clock time.
// The day's own date is the basis, never wall-clock "today".
func (m Meal) ScheduledAt(dayDate string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", dayDate+" "+m.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("meal %s has unparseable schedule %q %q: %w", m.ID, dayDate, m.Time, err)
	}
	return t, nil
}

// PlanDay groups the meals of one calendar day of a plan.
// Date is "YYYY-MM-DD".
type PlanDay struct {
	ID    string `bson:"id" json:"id"`
	Date  string `bson:"date" json:"date"`
	Meals []Meal `bson:"meals" json:"meals"`
}

// Plan is a patient's meal plan. Only active plans are scanned.
type Plan struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	Days      []PlanDay `bson:"days" json:"days"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DayFor returns the plan day for the given "YYYY-MM-DD" date, or nil.
func (p *Plan) DayFor(date string) *PlanDay {
	for i := range p.Days {
		if p.Days[i].Date == date {
			return &p.Days[i]
		}
	}
	return nil
}
