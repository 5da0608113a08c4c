package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/domain/repository"
	"github.com/nurbekov/mealbox/internal/lifecycle"
)

// quickCancelWindow bounds user-initiated cancellation of quick orders,
// measured from order creation.
const quickCancelWindow = 3 * time.Minute

// planCancelWindow keeps plan orders cancellable while still scheduled.
const planCancelWindow = 2 * time.Minute

// OrderOptions carries order pricing parameters.
type OrderOptions struct {
	DeliveryFee float64
}

// PlaceOrderInput is the payload for a quick order.
type PlaceOrderInput struct {
	Items         []model.OrderItem
	Address       string
	Phone         string
	PaymentMethod string
}

// PlacePlanInput is the payload for a subscription box order.
type PlacePlanInput struct {
	PlaceOrderInput
	PlanType      string
	Selections    map[model.MealCategory]string
	ProteinTarget *int
}

// OrderUseCase drives order placement, cancellation and the read-path half of
// the lifecycle engine. Notification failures are logged and swallowed so they
// never block an order operation.
type OrderUseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	quota    *QuotaUseCase
	notifier *NotificationUseCase
	clock    lifecycle.Clock
	opts     OrderOptions
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	quota *QuotaUseCase,
	notifier *NotificationUseCase,
	clock lifecycle.Clock,
	opts OrderOptions,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		users:    users,
		quota:    quota,
		notifier: notifier,
		clock:    clock,
		opts:     opts,
		logger:   logger,
	}
}

// PlaceQuick creates an ad-hoc order. Totals are computed once here and never
// recomputed.
func (u *OrderUseCase) PlaceQuick(ctx context.Context, userID int64, input PlaceOrderInput) (*model.Order, error) {
	order, err := u.buildOrder(ctx, userID, input, model.OrderKindQuick)
	if err != nil {
		return nil, err
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.notify(ctx, userID, fmt.Sprintf("Your order #%d has been placed", created.ID))
	u.notifier.BroadcastOrder(created)
	return created, nil
}

// PlacePlan creates a subscription box order. It is rejected when the user has
// no boxes left; on success exactly one box is consumed. The consume call runs
// after the order is durably created and is not atomic with it: a crash in
// between leaves the order charged to no box, which the next Allocate heals.
func (u *OrderUseCase) PlacePlan(ctx context.Context, userID int64, input PlacePlanInput) (*model.Order, error) {
	if !ValidateSelections(input.Selections) {
		return nil, domainErrors.ErrInvalidSelection
	}
	if input.ProteinTarget != nil && *input.ProteinTarget <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	quota, err := u.quota.Query(ctx, userID)
	if err != nil {
		return nil, err
	}
	if quota.Remaining() <= 0 {
		return nil, domainErrors.ErrNoBoxesLeft
	}

	order, err := u.buildOrder(ctx, userID, input.PlaceOrderInput, model.OrderKindPlan)
	if err != nil {
		return nil, err
	}
	order.PlanType = input.PlanType
	if order.PlanType == "" {
		order.PlanType = defaultPlanType
	}
	order.Selections = input.Selections
	order.ProteinTarget = input.ProteinTarget

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if _, err := u.quota.Consume(ctx, userID); err != nil {
		u.logger.Error("box consume failed after order creation",
			slog.Int64("order_id", created.ID), slog.String("error", err.Error()))
	}

	u.notify(ctx, userID, fmt.Sprintf("Your box delivery #%d is scheduled", created.ID))
	u.notifier.BroadcastOrder(created)
	return created, nil
}

// ListByUser returns the user's orders with statuses refreshed on read, so a
// client polling the list sees lifecycle progress without waiting for the
// sweeper.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if _, err := u.Refresh(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Get returns one of the user's orders with a refreshed status.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if _, err := u.Refresh(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel rejects terminal orders and any attempt outside the kind's window
// measured from creation; within the window it moves the order to cancelled.
func (u *OrderUseCase) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status.IsTerminal() {
		return nil, domainErrors.ErrOrderTerminal
	}

	window := quickCancelWindow
	if order.Kind == model.OrderKindPlan {
		window = planCancelWindow
	}
	if u.clock.Now().Sub(order.CreatedAt) > window {
		return nil, domainErrors.ErrCancelWindowExpired
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusCancelled

	u.notify(ctx, userID, fmt.Sprintf("Order #%d was cancelled", order.ID))
	u.notifier.BroadcastOrder(order)
	return order, nil
}

// Reorder places a fresh quick order cloned from an existing order's items.
// Totals and the creation timestamp are new; the source order is untouched.
func (u *OrderUseCase) Reorder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	source, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if source.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	created, err := u.PlaceQuick(ctx, userID, PlaceOrderInput{
		Items:         source.Items,
		Address:       source.Address,
		Phone:         source.Phone,
		PaymentMethod: source.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, userID, fmt.Sprintf("Order #%d reordered as #%d", source.ID, created.ID))
	return created, nil
}

// ActiveBatch returns non-terminal orders for the sweeper.
func (u *OrderUseCase) ActiveBatch(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListActive(ctx, limit)
}

// Refresh applies the pure transition function to one order. When the computed
// status differs from the stored one it persists the change, announces it, and
// broadcasts the updated order. Shared by the sweeper and the read path, which
// is what keeps the two in agreement.
func (u *OrderUseCase) Refresh(ctx context.Context, order *model.Order) (bool, error) {
	next := lifecycle.StatusAt(order.Kind, order.CreatedAt, order.Status, u.clock.Now())
	if next == order.Status {
		return false, nil
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, next); err != nil {
		// A concurrent writer finished the order while this copy was in
		// flight; the stored terminal status wins.
		if errors.Is(err, domainErrors.ErrOrderTerminal) {
			return false, nil
		}
		return false, err
	}
	order.Status = next

	u.notify(ctx, order.UserID, fmt.Sprintf("Order #%d is now %s", order.ID, statusLabel(next)))
	u.notifier.BroadcastOrder(order)
	return true, nil
}

// Purge physically removes an order. Admin only; the single place orders are
// deleted.
func (u *OrderUseCase) Purge(ctx context.Context, orderID int64) error {
	return u.orders.Delete(ctx, orderID)
}

func (u *OrderUseCase) buildOrder(ctx context.Context, userID int64, input PlaceOrderInput, kind model.OrderKind) (*model.Order, error) {
	if !ValidateItems(input.Items) || strings.TrimSpace(input.Address) == "" {
		return nil, domainErrors.ErrInvalidOrder
	}
	if !ValidatePhone(input.Phone) {
		return nil, domainErrors.ErrInvalidPhone
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range input.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	status := model.OrderStatusPending
	if kind == model.OrderKindPlan {
		status = model.OrderStatusScheduled
	}

	return &model.Order{
		UserID:        usr.ID,
		UserName:      usr.Name,
		UserEmail:     usr.Email,
		Kind:          kind,
		Status:        status,
		Items:         input.Items,
		Subtotal:      subtotal,
		DeliveryFee:   u.opts.DeliveryFee,
		Total:         subtotal + u.opts.DeliveryFee,
		Address:       strings.TrimSpace(input.Address),
		Phone:         strings.TrimSpace(input.Phone),
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     u.clock.Now(),
	}, nil
}

// notify records an event message, logging and swallowing failures: a broken
// notification store must never fail an order operation.
func (u *OrderUseCase) notify(ctx context.Context, userID int64, message string) {
	if err := u.notifier.Notify(ctx, userID, message); err != nil {
		u.logger.Error("notification failed",
			slog.Int64("user_id", userID), slog.String("error", err.Error()))
	}
}

func statusLabel(status model.OrderStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}
