package models

import "time"

// DeliveryCalendar is the schedule window for a meal delivery contract.
// StartDate and EndDate are "YYYY-MM-DD".
type DeliveryCalendar struct {
	ID         string    `bson:"id" json:"id"`
	PatientID  string    `bson:"patient_id" json:"patient_id"`
	ContractID string    `bson:"contract_id" json:"contract_id"`
	StartDate  string    `bson:"start_date" json:"start_date"`
	EndDate    string    `bson:"end_date" json:"end_date"`
	Address    string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
