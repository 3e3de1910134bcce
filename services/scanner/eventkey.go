package scanner

import (
	"time"

	"nutrivida/utils"
)

// EventKind names a class of notification occurrence.
type EventKind string

const (
	EventComidaProgramada      EventKind = "comida_programada"
	EventComidaOmitida         EventKind = "comida_omitida"
	EventAlertaComidasOmitidas EventKind = "alerta_comidas_omitidas"
	EventMenuDiario            EventKind = "menu_diario"
	EventSesionProxima24h      EventKind = "sesion_proxima_24h"
	EventSesionProxima1h       EventKind = "sesion_proxima_1h"
	EventVideollamadaProxima   EventKind = "videollamada_proxima"
	EventEntregaProxima        EventKind = "entrega_proxima"
	EventPacienteInactivo      EventKind = "paciente_inactivo"
)

// EventKey is the structured form of a dedup key. Daily kinds carry the
// date that scopes them to one calendar day; one-shot kinds leave it
// empty. The string form only exists at the ledger boundary, so the
// date formatting lives in exactly one place.
type EventKey struct {
	Kind EventKind
	Date string
}

// FixedKey builds a key for a one-shot event kind.
func FixedKey(kind EventKind) EventKey {
	return EventKey{Kind: kind}
}

// DailyKey builds a key scoped to the calendar day of t.
func DailyKey(kind EventKind, t time.Time) EventKey {
	return EventKey{Kind: kind, Date: t.Format(utils.DateLayout)}
}

// DateKey builds a key scoped to an already-formatted "YYYY-MM-DD" date.
func DateKey(kind EventKind, date string) EventKey {
	return EventKey{Kind: kind, Date: date}
}

// String serializes the key to its ledger form, e.g.
// "comida_programada_2025-01-20" or "sesion_proxima_24h".
func (k EventKey) String() string {
	if k.Date == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + "_" + k.Date
}
