package models

import "time"

// Patient is a platform patient. NutricionistaID and PsicologoID point at
// the assigned professionals; either may be empty.
type Patient struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	NutricionistaID string    `bson:"nutricionista_id,omitempty" json:"nutricionista_id,omitempty"`
	PsicologoID     string    `bson:"psicologo_id,omitempty" json:"psicologo_id,omitempty"`
	FCMToken        string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
