package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/server/http/dto"
)

// QuotaHandler serves the box ledger endpoints.
type QuotaHandler struct {
	facade QuotaFacade
}

// NewQuotaHandler constructs QuotaHandler.
func NewQuotaHandler(facade QuotaFacade) *QuotaHandler {
	return &QuotaHandler{facade: facade}
}

// Boxes handles GET /api/user/boxes.
func (h *QuotaHandler) Boxes(c *gin.Context) {
	userID := CurrentUserID(c)

	quota, err := h.facade.BoxQuota(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toQuotaResponse(quota))
}

// Subscribe handles POST /api/user/subscription.
func (h *QuotaHandler) Subscribe(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	quota, err := h.facade.ActivateSubscription(c.Request.Context(), userID, req.PlanType)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toQuotaResponse(quota))
}

func toQuotaResponse(quota *model.BoxQuota) dto.QuotaResponse {
	return dto.QuotaResponse{
		TotalBoxes:     quota.TotalBoxes,
		DeliveredBoxes: quota.DeliveredBoxes,
		RemainingBoxes: quota.Remaining(),
	}
}
