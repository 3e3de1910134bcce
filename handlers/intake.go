package handlers

import (
	"net/http"
	"time"

	intakeRepo "nutrivida/database/repository/intake"
	patientRepo "nutrivida/database/repository/patient"
	"nutrivida/models"
	"nutrivida/services/notification"
	"nutrivida/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntakeHandler records meal intakes. Each log informs the patient's
// nutritionist; the recorded tuple also silences the meal scanners for
// that meal and day.
type IntakeHandler struct {
	Intakes    intakeRepo.IntakeRepository
	Patients   patientRepo.PatientRepository
	Dispatcher notification.Dispatcher
	Logger     *zap.Logger
}

func NewIntakeHandler(intakes intakeRepo.IntakeRepository, patients patientRepo.PatientRepository, dispatcher notification.Dispatcher, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{Intakes: intakes, Patients: patients, Dispatcher: dispatcher, Logger: logger}
}

// CreateHandler logs an intake for a patient.
func (h *IntakeHandler) CreateHandler(c *gin.Context) {
	var in struct {
		PatientID string          `json:"patient_id"`
		MealType  models.MealType `json:"meal_type"`
		Date      string          `json:"date"`
		Comment   string          `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if in.PatientID == "" || in.MealType == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "patient_id and meal_type are required")
		return
	}

	now := time.Now()
	if in.Date == "" {
		in.Date = now.Format(utils.DateLayout)
	} else if _, err := time.Parse(utils.DateLayout, in.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", in.Date)
		return
	}

	patient, err := h.Patients.GetByID(c.Request.Context(), in.PatientID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", err.Error())
		return
	}

	rec := &models.IntakeRecord{
		ID:        uuid.New().String(),
		PatientID: in.PatientID,
		MealType:  in.MealType,
		Date:      in.Date,
		Comment:   in.Comment,
		LoggedAt:  now,
	}
	if err := h.Intakes.Create(c.Request.Context(), rec); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to record intake", err.Error())
		return
	}

	h.notifyNutritionist(c, patient, rec)
	c.JSON(http.StatusCreated, rec)
}

func (h *IntakeHandler) notifyNutritionist(c *gin.Context, patient *models.Patient, rec *models.IntakeRecord) {
	if patient.NutricionistaID == "" {
		return
	}
	prof, err := h.Patients.GetProfessional(c.Request.Context(), models.KindNutricionista, patient.NutricionistaID)
	if err != nil {
		h.Logger.Warn("failed to resolve nutritionist for intake notification",
			zap.String("patientId", patient.ID), zap.Error(err))
		return
	}
	if prof.RecipientUserID() == "" {
		return
	}
	n := notification.NewIngestaRegistrada(prof.RecipientUserID(), patient.Name, rec)
	if err := h.Dispatcher.Dispatch(c.Request.Context(), n, prof.FCMToken); err != nil {
		h.Logger.Warn("failed to dispatch intake notification",
			zap.String("patientId", patient.ID), zap.Error(err))
	}
}
