package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/server/http/dto"
	"github.com/nurbekov/mealbox/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// PathID parses a numeric :id path parameter.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}

	var selections map[string]string
	if len(order.Selections) > 0 {
		selections = make(map[string]string, len(order.Selections))
		for category, item := range order.Selections {
			selections[string(category)] = item
		}
	}

	return dto.OrderResponse{
		ID:            order.ID,
		Kind:          string(order.Kind),
		Status:        string(order.Status),
		Items:         items,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Total:         order.Total,
		Address:       order.Address,
		Phone:         order.Phone,
		PaymentMethod: order.PaymentMethod,
		PlanType:      order.PlanType,
		Selections:    selections,
		ProteinTarget: order.ProteinTarget,
		CreatedAt:     order.CreatedAt,
	}
}
