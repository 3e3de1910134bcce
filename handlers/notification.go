package handlers

import (
	"net/http"
	"strconv"

	notificationRepo "nutrivida/database/repository/notification"
	"nutrivida/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the recipient-facing notification endpoints.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// ListByUserHandler returns a user's notifications, newest first.
// ?unread=true filters to unread ones; ?limit caps the page size.
func (h *NotificationHandler) ListByUserHandler(c *gin.Context) {
	userID := c.Param("userID")
	unreadOnly := c.Query("unread") == "true"

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = parsed
	}

	notifications, err := h.Repo.ListByUser(c.Request.Context(), userID, unreadOnly, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCountHandler returns the number of unread notifications.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	userID := c.Param("userID")

	count, err := h.Repo.CountUnread(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkReadHandler flags a notification as read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.Repo.MarkRead(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to mark notification read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
