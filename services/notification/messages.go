package notification

import (
	"fmt"
	"time"

	"nutrivida/models"

	"github.com/google/uuid"
)

// Message constructors. One per event kind, so every title, body, kind
// and deep link on the platform is decided here and nowhere else.
//
// Kind mapping: reminders are info, confirmations and completions are
// success, cancellations and alerts are warning.

func newNotification(userID string, kind models.NotificationKind, title, body, link string) *models.Notification {
	return &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now(),
	}
}

// NewSesionCreada confirms a freshly scheduled session to the patient.
func NewSesionCreada(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationSuccess,
		"Sesión agendada",
		fmt.Sprintf("Tu sesión fue agendada para el %s.", s.ScheduledAt.Format("02/01/2006 15:04")),
		"/sesiones/"+s.ID)
}

// NewSesionProxima24h reminds a participant of a session one day out.
func NewSesionProxima24h(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Sesión mañana",
		fmt.Sprintf("Tienes una sesión mañana a las %s.", s.ScheduledAt.Format("15:04")),
		"/sesiones/"+s.ID)
}

// NewSesionProxima1h reminds a participant of a session within the hour.
func NewSesionProxima1h(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Sesión en una hora",
		fmt.Sprintf("Tu sesión comienza a las %s.", s.ScheduledAt.Format("15:04")),
		"/sesiones/"+s.ID)
}

// NewSesionCancelada informs a participant that a session was cancelled.
func NewSesionCancelada(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationWarning,
		"Sesión cancelada",
		fmt.Sprintf("La sesión del %s fue cancelada.", s.ScheduledAt.Format("02/01/2006 15:04")),
		"/sesiones/"+s.ID)
}

// NewSesionReprogramada informs a participant of a new session time.
func NewSesionReprogramada(userID string, s *models.Session, newTime time.Time) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Sesión reprogramada",
		fmt.Sprintf("Tu sesión fue movida al %s.", newTime.Format("02/01/2006 15:04")),
		"/sesiones/"+s.ID)
}

// NewVideollamadaIniciada tells a participant the call has started.
func NewVideollamadaIniciada(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Videollamada iniciada",
		"Tu videollamada ya comenzó. Únete ahora.",
		s.MeetingURL)
}

// NewVideollamadaProxima warns a participant the call starts in minutes.
func NewVideollamadaProxima(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Videollamada en unos minutos",
		fmt.Sprintf("Tu videollamada comienza a las %s. Prepárate para unirte.", s.ScheduledAt.Format("15:04")),
		s.MeetingURL)
}

// NewParticipanteUnido tells the other party someone joined the call.
func NewParticipanteUnido(userID string, s *models.Session, participantName string) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Participante conectado",
		fmt.Sprintf("%s se unió a la videollamada.", participantName),
		s.MeetingURL)
}

// NewVideollamadaFinalizada closes the loop after a call ends.
func NewVideollamadaFinalizada(userID string, s *models.Session) *models.Notification {
	return newNotification(userID, models.NotificationSuccess,
		"Videollamada finalizada",
		"Tu videollamada terminó. ¡Gracias por asistir!",
		"/sesiones/"+s.ID)
}

// NewComidaProgramada reminds the patient a meal's time has arrived.
func NewComidaProgramada(userID string, meal models.Meal) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		fmt.Sprintf("Hora de tu %s", meal.Type.Label()),
		fmt.Sprintf("Es hora de tu %s: %s. ¡No olvides registrarlo!", meal.Type.Label(), meal.Name),
		"/plan/hoy")
}

// NewComidaOmitida follows up on a meal the patient never logged.
func NewComidaOmitida(userID string, meal models.Meal) *models.Notification {
	return newNotification(userID, models.NotificationWarning,
		fmt.Sprintf("¿Olvidaste tu %s?", meal.Type.Label()),
		fmt.Sprintf("No registraste tu %s de las %s. Aún puedes hacerlo.", meal.Type.Label(), meal.Time),
		"/plan/hoy")
}

// NewIngestaRegistrada confirms to the professional that a patient logged a meal.
func NewIngestaRegistrada(userID string, patientName string, rec *models.IntakeRecord) *models.Notification {
	return newNotification(userID, models.NotificationSuccess,
		"Ingesta registrada",
		fmt.Sprintf("%s registró su %s del %s.", patientName, rec.MealType.Label(), rec.Date),
		"/pacientes/"+rec.PatientID)
}

// NewMenuDiario is the morning summary of the day's plan.
func NewMenuDiario(userID string, day *models.PlanDay) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Tu menú de hoy",
		fmt.Sprintf("Tienes %d comidas programadas para hoy. Revisa tu plan.", len(day.Meals)),
		"/plan/hoy")
}

// NewMenuModificado tells the patient their plan changed.
func NewMenuModificado(userID string, plan *models.Plan, date string) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Menú actualizado",
		fmt.Sprintf("Tu nutricionista actualizó el menú del %s.", date),
		"/planes/"+plan.ID)
}

// NewEntregaProxima reminds the patient a delivery arrives tomorrow.
func NewEntregaProxima(userID string, cal models.DeliveryCalendar) *models.Notification {
	return newNotification(userID, models.NotificationInfo,
		"Entrega programada para mañana",
		fmt.Sprintf("Tu entrega de comidas llega mañana (%s).", cal.StartDate),
		"/entregas/"+cal.ID)
}

// NewPacienteInactivo alerts the professional about a quiet patient.
func NewPacienteInactivo(userID string, patient *models.Patient, days int) *models.Notification {
	return newNotification(userID, models.NotificationWarning,
		"Paciente sin actividad",
		fmt.Sprintf("%s no registra ingestas desde hace %d días.", patient.Name, days),
		"/pacientes/"+patient.ID)
}

// NewAlertaComidasOmitidas escalates repeated missed meals to the professional.
func NewAlertaComidasOmitidas(userID string, patient *models.Patient, count int) *models.Notification {
	return newNotification(userID, models.NotificationWarning,
		"Comidas omitidas",
		fmt.Sprintf("%s lleva %d comidas sin registrar hoy.", patient.Name, count),
		"/pacientes/"+patient.ID)
}
