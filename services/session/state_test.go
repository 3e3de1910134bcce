package session

import (
	"testing"

	"nutrivida/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.SessionState
		to   models.SessionState
		want bool
	}{
		{models.SessionProgramada, models.SessionEnCurso, true},
		{models.SessionProgramada, models.SessionCancelada, true},
		{models.SessionProgramada, models.SessionCompletada, false},
		{models.SessionEnCurso, models.SessionCompletada, true},
		{models.SessionEnCurso, models.SessionCancelada, true},
		{models.SessionEnCurso, models.SessionProgramada, false},
		{models.SessionCompletada, models.SessionEnCurso, false},
		{models.SessionCompletada, models.SessionCancelada, false},
		{models.SessionCancelada, models.SessionProgramada, false},
		{models.SessionCancelada, models.SessionEnCurso, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: models.SessionCompletada, To: models.SessionEnCurso}
	want := "invalid session transition COMPLETADA -> EN_CURSO"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
