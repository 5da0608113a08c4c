package dto

import "time"

// OrderItem is a priced line item as sent over the wire.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PlaceOrderRequest describes a quick order payload.
type PlaceOrderRequest struct {
	Items         []OrderItem `json:"items"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	PaymentMethod string      `json:"payment_method"`
}

// PlacePlanRequest describes a subscription box order payload.
type PlacePlanRequest struct {
	PlaceOrderRequest
	PlanType      string            `json:"plan_type"`
	Selections    map[string]string `json:"selections"`
	ProteinTarget *int              `json:"protein_target,omitempty"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID            int64             `json:"id"`
	Kind          string            `json:"kind"`
	Status        string            `json:"status"`
	Items         []OrderItem       `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	DeliveryFee   float64           `json:"delivery_fee"`
	Total         float64           `json:"total"`
	Address       string            `json:"address"`
	Phone         string            `json:"phone"`
	PaymentMethod string            `json:"payment_method"`
	PlanType      string            `json:"plan_type,omitempty"`
	Selections    map[string]string `json:"selections,omitempty"`
	ProteinTarget *int              `json:"protein_target,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
