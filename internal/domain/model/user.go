package model

import "time"

// User represents a registered customer of the meal service.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        string

	// Subscription fields mutated by the box quota ledger.
	IsPremium      bool
	PremiumExpiry  *time.Time
	PlanType       string
	TotalBoxes     int
	DeliveredBoxes int

	CreatedAt time.Time
}
