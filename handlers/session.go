package handlers

import (
	"errors"
	"net/http"
	"time"

	"nutrivida/services/session"
	"nutrivida/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the session lifecycle endpoints.
type SessionHandler struct {
	Svc *session.Service
}

func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{Svc: svc}
}

// CreateHandler schedules a new session.
func (h *SessionHandler) CreateHandler(c *gin.Context) {
	var in session.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetHandler returns one session.
func (h *SessionHandler) GetHandler(c *gin.Context) {
	sess, err := h.Svc.Sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

// StartHandler moves a session into EN_CURSO.
func (h *SessionHandler) StartHandler(c *gin.Context) {
	sess, err := h.Svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// JoinHandler records a participant joining an EN_CURSO session.
func (h *SessionHandler) JoinHandler(c *gin.Context) {
	var in struct {
		Participant session.Participant `json:"participant"`
		Name        string              `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Svc.Join(c.Request.Context(), c.Param("id"), in.Participant, in.Name)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// FinishHandler completes a session.
func (h *SessionHandler) FinishHandler(c *gin.Context) {
	sess, err := h.Svc.Finish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CancelHandler cancels a session.
func (h *SessionHandler) CancelHandler(c *gin.Context) {
	sess, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RescheduleHandler moves a PROGRAMADA session to a new time.
func (h *SessionHandler) RescheduleHandler(c *gin.Context) {
	var in struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.ScheduledAt.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "scheduled_at is required")
		return
	}

	sess, err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), in.ScheduledAt)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// respondTransitionError maps illegal state changes to 409 and anything
// else to a generic failure.
func respondTransitionError(c *gin.Context, err error) {
	var invalid *session.InvalidTransitionError
	if errors.As(err, &invalid) {
		utils.JSONError(c, http.StatusConflict, "invalid session transition", invalid.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "session operation failed", err.Error())
}
