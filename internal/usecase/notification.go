package usecase

import (
	"context"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/domain/repository"
)

// Broadcaster pushes events to connected realtime clients. Delivery is
// fire-and-forget: implementations never fail and never block the caller.
type Broadcaster interface {
	// Publish sends an event to every connected client.
	Publish(event string, payload any)
	// PublishToUser sends an event to clients in the user's room.
	PublishToUser(userID int64, event string, payload any)
}

// Realtime event names.
const (
	EventNotification = "notification"
	EventOrderUpdate  = "order_update"
)

// NotificationUseCase durably records event messages and fans them out to
// realtime listeners. The persisted record is the source of truth; the
// broadcast is a convenience layer.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	broadcaster   Broadcaster
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(n repository.NotificationRepository, b Broadcaster) *NotificationUseCase {
	return &NotificationUseCase{notifications: n, broadcaster: b}
}

// Notify persists a notification and best-effort broadcasts it on the global
// feed and the owning user's room. Only the persistence error is surfaced.
func (u *NotificationUseCase) Notify(ctx context.Context, userID int64, message string) error {
	notification, err := u.notifications.Create(ctx, userID, message)
	if err != nil {
		return err
	}

	u.broadcaster.Publish(EventNotification, notification)
	u.broadcaster.PublishToUser(userID, EventNotification, notification)
	return nil
}

// BroadcastOrder pushes an updated order to the global feed and its owner.
func (u *NotificationUseCase) BroadcastOrder(order *model.Order) {
	u.broadcaster.Publish(EventOrderUpdate, order)
	u.broadcaster.PublishToUser(order.UserID, EventOrderUpdate, order)
}

// ListByUser returns the user's notifications, newest first.
func (u *NotificationUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, userID)
}

// MarkRead flips a single notification to read. The flag never flips back.
func (u *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return u.notifications.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead flips every unread notification of the user.
func (u *NotificationUseCase) MarkAllRead(ctx context.Context, userID int64) error {
	return u.notifications.MarkAllRead(ctx, userID)
}
