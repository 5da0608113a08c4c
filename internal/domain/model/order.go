package model

import "time"

// OrderKind distinguishes ad-hoc orders from subscription box deliveries.
type OrderKind string

const (
	OrderKindQuick OrderKind = "quick"
	OrderKindPlan  OrderKind = "plan"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	// Quick order stages.
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusCooking        OrderStatus = "cooking"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"

	// Plan order stages.
	OrderStatusScheduled  OrderStatus = "scheduled"
	OrderStatusInProgress OrderStatus = "in_progress"

	// Terminal stages shared by both kinds.
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the status is absorbing.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem is a priced line item snapshot taken at order creation.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// MealCategory is a closed set of meal slots a plan selection may fill.
type MealCategory string

const (
	MealCategoryBreakfast MealCategory = "breakfast"
	MealCategoryLunch     MealCategory = "lunch"
	MealCategoryDinner    MealCategory = "dinner"
	MealCategorySnack     MealCategory = "snack"
)

// MealCategories lists valid selection slots in serving order.
var MealCategories = []MealCategory{
	MealCategoryBreakfast,
	MealCategoryLunch,
	MealCategoryDinner,
	MealCategorySnack,
}

// Order describes a placed order of either kind. CreatedAt is the authoritative
// clock for all lifecycle math; monetary fields are computed once at creation
// and never recomputed.
type Order struct {
	ID            int64
	UserID        int64
	UserName      string
	UserEmail     string
	Kind          OrderKind
	Status        OrderStatus
	Items         []OrderItem
	Subtotal      float64
	DeliveryFee   float64
	Total         float64
	Address       string
	Phone         string
	PaymentMethod string

	// Plan orders only.
	PlanType      string
	Selections    map[MealCategory]string
	ProteinTarget *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
