package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/server/http/dto"
	"github.com/nurbekov/mealbox/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// PlaceQuick handles POST /api/orders.
func (h *OrderHandler) PlaceQuick(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceQuick(c.Request.Context(), userID, toPlaceInput(req))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// PlacePlan handles POST /api/plan/orders.
func (h *OrderHandler) PlacePlan(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.PlacePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.PlacePlanInput{
		PlaceOrderInput: toPlaceInput(req.PlaceOrderRequest),
		PlanType:        req.PlanType,
		ProteinTarget:   req.ProteinTarget,
	}
	if len(req.Selections) > 0 {
		input.Selections = make(map[model.MealCategory]string, len(req.Selections))
		for category, item := range req.Selections {
			input.Selections[model.MealCategory(category)] = item
		}
	}

	order, err := h.facade.PlacePlan(c.Request.Context(), userID, input)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), userID, orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Reorder handles POST /api/orders/:id/reorder.
func (h *OrderHandler) Reorder(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := PathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Reorder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Purge handles DELETE /api/admin/orders/:id.
func (h *OrderHandler) Purge(c *gin.Context) {
	orderID, ok := PathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.PurgeOrder(c.Request.Context(), orderID); err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidOrder),
		errors.Is(err, domainErrors.ErrInvalidPhone),
		errors.Is(err, domainErrors.ErrInvalidAmount):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrInvalidSelection):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrOrderTerminal),
		errors.Is(err, domainErrors.ErrCancelWindowExpired),
		errors.Is(err, domainErrors.ErrNoBoxesLeft):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toPlaceInput(req dto.PlaceOrderRequest) usecase.PlaceOrderInput {
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	return usecase.PlaceOrderInput{
		Items:         items,
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
	}
}
