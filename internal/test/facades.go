package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	RequestCodeFn  func(context.Context, string) (string, error)
	CodeLoginFn    func(context.Context, string, string) (string, error)
	ParseTokenFn   func(string) (int64, error)
}

// Register delegates to the override or returns a default token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, name string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, name)
	}
	return "token", nil
}

// Authenticate delegates to the override or returns a default token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// RequestLoginCode delegates to the override or returns a fixed code.
func (s AuthFacadeStub) RequestLoginCode(ctx context.Context, email string) (string, error) {
	if s.RequestCodeFn != nil {
		return s.RequestCodeFn(ctx, email)
	}
	return "000000", nil
}

// AuthenticateWithCode delegates to the override or returns a default token.
func (s AuthFacadeStub) AuthenticateWithCode(ctx context.Context, email, code string) (string, error) {
	if s.CodeLoginFn != nil {
		return s.CodeLoginFn(ctx, email, code)
	}
	return "token", nil
}

// ParseToken delegates to the override or accepts any token as user 1.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceQuickFn func(context.Context, int64, usecase.PlaceOrderInput) (*model.Order, error)
	PlacePlanFn  func(context.Context, int64, usecase.PlacePlanInput) (*model.Order, error)
	OrdersFn     func(context.Context, int64) ([]model.Order, error)
	OrderFn      func(context.Context, int64, int64) (*model.Order, error)
	CancelFn     func(context.Context, int64, int64) (*model.Order, error)
	ReorderFn    func(context.Context, int64, int64) (*model.Order, error)
	PurgeFn      func(context.Context, int64) error
}

// PlaceQuick delegates to the override or returns a default order.
func (s OrderFacadeStub) PlaceQuick(ctx context.Context, userID int64, input usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceQuickFn != nil {
		return s.PlaceQuickFn(ctx, userID, input)
	}
	return &model.Order{ID: 1, UserID: userID, Kind: model.OrderKindQuick, Status: model.OrderStatusPending}, nil
}

// PlacePlan delegates to the override or returns a default order.
func (s OrderFacadeStub) PlacePlan(ctx context.Context, userID int64, input usecase.PlacePlanInput) (*model.Order, error) {
	if s.PlacePlanFn != nil {
		return s.PlacePlanFn(ctx, userID, input)
	}
	return &model.Order{ID: 1, UserID: userID, Kind: model.OrderKindPlan, Status: model.OrderStatusScheduled}, nil
}

// Orders returns predefined orders for the user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// Order returns one predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// CancelOrder delegates to the override or cancels successfully.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

// Reorder delegates to the override or returns a cloned order.
func (s OrderFacadeStub) Reorder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.ReorderFn != nil {
		return s.ReorderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID + 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

// PurgeOrder delegates to the override or succeeds.
func (s OrderFacadeStub) PurgeOrder(ctx context.Context, orderID int64) error {
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, orderID)
	}
	return nil
}

// QuotaFacadeStub simulates box quota operations.
type QuotaFacadeStub struct {
	QuotaFn    func(context.Context, int64) (*model.BoxQuota, error)
	ActivateFn func(context.Context, int64, string) (*model.BoxQuota, error)
}

// BoxQuota returns the configured quota or a default.
func (s QuotaFacadeStub) BoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	if s.QuotaFn != nil {
		return s.QuotaFn(ctx, userID)
	}
	return &model.BoxQuota{TotalBoxes: 30, DeliveredBoxes: 10}, nil
}

// ActivateSubscription delegates to the override or allocates a monthly quota.
func (s QuotaFacadeStub) ActivateSubscription(ctx context.Context, userID int64, planType string) (*model.BoxQuota, error) {
	if s.ActivateFn != nil {
		return s.ActivateFn(ctx, userID, planType)
	}
	return &model.BoxQuota{TotalBoxes: 30}, nil
}

// NotificationFacadeStub simulates notification endpoints.
type NotificationFacadeStub struct {
	ListFn        func(context.Context, int64) ([]model.Notification, error)
	MarkReadFn    func(context.Context, int64, int64) error
	MarkAllReadFn func(context.Context, int64) error
}

// Notifications returns configured items or a default entry.
func (s NotificationFacadeStub) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Notification{{ID: 1, UserID: userID, Message: "Your order #1 has been placed", CreatedAt: time.Unix(0, 0)}}, nil
}

// MarkNotificationRead delegates to the override or succeeds.
func (s NotificationFacadeStub) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, userID, notificationID)
	}
	return nil
}

// MarkAllNotificationsRead delegates to the override or succeeds.
func (s NotificationFacadeStub) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	if s.MarkAllReadFn != nil {
		return s.MarkAllReadFn(ctx, userID)
	}
	return nil
}

// MealboxFacadeStub aggregates the full facade surface used by the router.
type MealboxFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	QuotaFacadeStub
	NotificationFacadeStub
}

// RefreshCall records a sweeper refresh invocation.
type RefreshCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// SweepFacadeStub mimics sweeper interactions with the application facade.
type SweepFacadeStub struct {
	Batches   [][]model.Order
	ActiveFn  func(context.Context, int) ([]model.Order, error)
	RefreshFn func(context.Context, *model.Order) (bool, error)

	Refreshed []RefreshCall
	mu        sync.Mutex
	batchCall int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SweepFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweepFacadeStub) Unlock() { s.mu.Unlock() }

// ActiveOrders returns batches from the configured queue.
func (s *SweepFacadeStub) ActiveOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCall, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// RefreshOrder records the invocation and reports a transition.
func (s *SweepFacadeStub) RefreshOrder(ctx context.Context, order *model.Order) (bool, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshed = append(s.Refreshed, RefreshCall{OrderID: order.ID, Status: order.Status})
	return true, nil
}
