package app

import (
	"context"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/usecase"
)

// MealboxFacade is the single entry point handlers and the sweeper go through
// to reach application use cases.
type MealboxFacade struct {
	auth          *usecase.AuthUseCase
	orders        *usecase.OrderUseCase
	quota         *usecase.QuotaUseCase
	notifications *usecase.NotificationUseCase
}

// NewMealboxFacade constructs the application facade.
func NewMealboxFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	quota *usecase.QuotaUseCase,
	notifications *usecase.NotificationUseCase,
) *MealboxFacade {
	return &MealboxFacade{auth: auth, orders: orders, quota: quota, notifications: notifications}
}

func (f *MealboxFacade) Register(ctx context.Context, email, password, name string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password, name)
	return token, err
}

func (f *MealboxFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *MealboxFacade) RequestLoginCode(ctx context.Context, email string) (string, error) {
	return f.auth.RequestLoginCode(ctx, email)
}

func (f *MealboxFacade) AuthenticateWithCode(ctx context.Context, email, code string) (string, error) {
	_, token, err := f.auth.AuthenticateWithCode(ctx, email, code)
	return token, err
}

func (f *MealboxFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MealboxFacade) PlaceQuick(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.PlaceQuick(ctx, userID, input)
}

func (f *MealboxFacade) PlacePlan(ctx context.Context, userID int64, input usecase.PlacePlanInput) (*model.Order, error) {
	return f.orders.PlacePlan(ctx, userID, input)
}

func (f *MealboxFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *MealboxFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *MealboxFacade) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, userID, orderID)
}

func (f *MealboxFacade) Reorder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Reorder(ctx, userID, orderID)
}

func (f *MealboxFacade) PurgeOrder(ctx context.Context, orderID int64) error {
	return f.orders.Purge(ctx, orderID)
}

// ActiveOrders feeds the sweeper with non-terminal orders.
func (f *MealboxFacade) ActiveOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ActiveBatch(ctx, limit)
}

// RefreshOrder advances one order through the lifecycle engine.
func (f *MealboxFacade) RefreshOrder(ctx context.Context, order *model.Order) (bool, error) {
	return f.orders.Refresh(ctx, order)
}

func (f *MealboxFacade) BoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	return f.quota.Query(ctx, userID)
}

func (f *MealboxFacade) ActivateSubscription(ctx context.Context, userID int64, planType string) (*model.BoxQuota, error) {
	return f.quota.Activate(ctx, userID, planType)
}

func (f *MealboxFacade) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	return f.notifications.ListByUser(ctx, userID)
}

func (f *MealboxFacade) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	return f.notifications.MarkRead(ctx, userID, notificationID)
}

func (f *MealboxFacade) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return f.notifications.MarkAllRead(ctx, userID)
}
