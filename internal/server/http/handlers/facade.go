package handlers

import (
	"context"
	"net/http"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, name string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	RequestLoginCode(ctx context.Context, email string) (string, error)
	AuthenticateWithCode(ctx context.Context, email, code string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceQuick(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error)
	PlacePlan(ctx context.Context, userID int64, input usecase.PlacePlanInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	Reorder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	PurgeOrder(ctx context.Context, orderID int64) error
}

// QuotaFacade provides box ledger operations.
type QuotaFacade interface {
	BoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error)
	ActivateSubscription(ctx context.Context, userID int64, planType string) (*model.BoxQuota, error)
}

// NotificationFacade provides notification feed operations.
type NotificationFacade interface {
	Notifications(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
}

// MealboxFacade aggregates the full set of operations used across handlers.
type MealboxFacade interface {
	AuthFacade
	OrderFacade
	QuotaFacade
	NotificationFacade
}

// RealtimeServer upgrades an authenticated request to a websocket connection.
type RealtimeServer interface {
	Serve(w http.ResponseWriter, r *http.Request, userID int64) error
}
