package repository

import (
	"context"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// NotificationRepository persists user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, userID int64, message string) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}
