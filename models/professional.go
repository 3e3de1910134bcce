package models

// ProfessionalKind distinguishes the two professional roles on the
// platform. It replaces any runtime "which model is this" probing with a
// plain tagged value.
type ProfessionalKind string

const (
	KindNutricionista ProfessionalKind = "nutricionista"
	KindPsicologo     ProfessionalKind = "psicologo"
)

// Professional is a nutritionist or psychologist with a platform account.
type Professional struct {
	ID       string           `bson:"id" json:"id"`
	Kind     ProfessionalKind `bson:"kind" json:"kind"`
	UserID   string           `bson:"user_id" json:"user_id"`
	Name     string           `bson:"name" json:"name"`
	Email    string           `bson:"email" json:"email"`
	FCMToken string           `bson:"fcm_token,omitempty" json:"-"`
}

// RecipientUserID returns the user account that should receive
// notifications addressed to this professional. Empty when the
// professional has no resolvable account.
func (p *Professional) RecipientUserID() string {
	if p == nil {
		return ""
	}
	return p.UserID
}
