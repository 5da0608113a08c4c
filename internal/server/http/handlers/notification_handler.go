package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/server/http/dto"
)

// NotificationHandler serves the notification feed endpoints.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/user/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)

	notifications, err := h.facade.Notifications(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(notifications) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// MarkRead handles POST /api/user/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := CurrentUserID(c)
	notificationID, ok := PathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.MarkNotificationRead(c.Request.Context(), userID, notificationID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// MarkAllRead handles POST /api/user/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := CurrentUserID(c)

	if err := h.facade.MarkAllNotificationsRead(c.Request.Context(), userID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
