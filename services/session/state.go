package session

import (
	"fmt"

	"nutrivida/models"
)

// transitions is the adjacency table for the session state machine.
// COMPLETADA and CANCELADA are terminal: they have no outgoing edges.
var transitions = map[models.SessionState][]models.SessionState{
	models.SessionProgramada: {models.SessionEnCurso, models.SessionCancelada},
	models.SessionEnCurso:    {models.SessionCompletada, models.SessionCancelada},
	models.SessionCompletada: {},
	models.SessionCancelada:  {},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to models.SessionState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports an attempted illegal state change.
type InvalidTransitionError struct {
	From models.SessionState
	To   models.SessionState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid session transition %s -> %s", e.From, e.To)
}
