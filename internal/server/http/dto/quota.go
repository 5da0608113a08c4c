package dto

// SubscriptionRequest activates or upgrades a meal plan.
type SubscriptionRequest struct {
	PlanType string `json:"plan_type"`
}

// QuotaResponse summarizes the box ledger.
type QuotaResponse struct {
	TotalBoxes     int `json:"total_boxes"`
	DeliveredBoxes int `json:"delivered_boxes"`
	RemainingBoxes int `json:"remaining_boxes"`
}
