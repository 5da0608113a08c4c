package repository

import (
	"context"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// OrderRepository persists orders of both kinds.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// ListActive returns orders whose status is not terminal, oldest first.
	ListActive(ctx context.Context, limit int) ([]model.Order, error)

	// UpdateStatus persists a status transition. The status column is the only
	// mutable order field.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// Delete physically removes an order. Admin purge only.
	Delete(ctx context.Context, orderID int64) error
}
