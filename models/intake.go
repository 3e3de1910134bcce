package models

import "time"

// IntakeRecord is a patient's log of having eaten a meal. Its existence
// for a (patient, meal type, date) tuple is the "already acted" signal
// that suppresses meal reminders and missed-meal follow-ups.
type IntakeRecord struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	MealType  MealType  `bson:"meal_type" json:"meal_type"`
	Date      string    `bson:"date" json:"date"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	LoggedAt  time.Time `bson:"logged_at" json:"logged_at"`
}
