package models

import "time"

// Entity kind tags stored on tracking records. They identify which
// collection an EntityID refers to.
const (
	EntityComida            = "comida"
	EntitySesion            = "sesion"
	EntityPlanDia           = "plan_dia"
	EntityCalendarioEntrega = "calendario_entrega"
	EntityPaciente          = "paciente"
)

// TrackingRecord is one entry of the notification dedup ledger.
// The (event_type, entity_id, entity_kind, recipient_user_id) tuple is
// unique at the index level; records are append-only and never mutated,
// so the ledger doubles as an audit trail of everything sent.
type TrackingRecord struct {
	EventType       string    `bson:"event_type" json:"event_type"`
	EntityID        string    `bson:"entity_id" json:"entity_id"`
	EntityKind      string    `bson:"entity_kind" json:"entity_kind"`
	RecipientUserID string    `bson:"recipient_user_id" json:"recipient_user_id"`
	SentAt          time.Time `bson:"sent_at" json:"sent_at"`
}
