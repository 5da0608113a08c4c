package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Add seeds a user directly, assigning an ID when missing.
func (s *UserRepositoryStub) Add(u *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.Next
		s.Next++
	} else if u.ID >= s.Next {
		s.Next = u.ID + 1
	}
	s.ByEmail[u.Email] = u
	s.ByID[u.ID] = u
	return u
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, name string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, Name: name}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ActivateSubscription records premium activation on the stored user.
func (s *UserRepositoryStub) ActivateSubscription(ctx context.Context, userID int64, planType string, expiry time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.IsPremium = true
	user.PlanType = planType
	user.PremiumExpiry = &expiry
	return nil
}

// SetBoxQuota resets the ledger fields on the stored user.
func (s *UserRepositoryStub) SetBoxQuota(ctx context.Context, userID int64, totalBoxes int) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.TotalBoxes = totalBoxes
	user.DeliveredBoxes = 0
	return nil
}

// ConsumeBox increments delivered boxes with the clamp applied.
func (s *UserRepositoryStub) ConsumeBox(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.ByID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if user.DeliveredBoxes < user.TotalBoxes {
		user.DeliveredBoxes++
	}
	return &model.BoxQuota{TotalBoxes: user.TotalBoxes, DeliveredBoxes: user.DeliveredBoxes}, nil
}

// GetBoxQuota returns the ledger fields of the stored user.
func (s *UserRepositoryStub) GetBoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.ByID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.BoxQuota{TotalBoxes: user.TotalBoxes, DeliveredBoxes: user.DeliveredBoxes}, nil
}

// OrderRepositoryStub stores orders in-memory and allows overrides.
type OrderRepositoryStub struct {
	mu sync.Mutex

	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListActiveFn   func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
	DeleteFn       func(context.Context, int64) error

	Orders  map[int64]*model.Order
	Next    int64
	Updates []OrderStatusUpdate
	Deleted []int64
}

// OrderStatusUpdate records an UpdateStatus invocation.
type OrderStatusUpdate struct {
	OrderID int64
	Status  model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Add seeds an order directly, assigning an ID when missing.
func (s *OrderRepositoryStub) Add(o *model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	if o.ID == 0 {
		o.ID = s.Next
		s.Next++
	} else if o.ID >= s.Next {
		s.Next = o.ID + 1
	}
	s.Orders[o.ID] = o
	return o
}

// Create stores the order and assigns an identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return s.Add(order), nil
}

// GetByID fetches a stored order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's stored orders.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ListActive returns stored non-terminal orders.
func (s *OrderRepositoryStub) ListActive(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if !o.Status.IsTerminal() {
			result = append(result, *o)
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// UpdateStatus records the transition and applies it to stored state. Like
// the real repository it refuses to overwrite a terminal status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status.IsTerminal() {
		return domainErrors.ErrOrderTerminal
	}
	s.Updates = append(s.Updates, OrderStatusUpdate{OrderID: orderID, Status: status})
	order.Status = status
	return nil
}

// Delete removes the order from stored state.
func (s *OrderRepositoryStub) Delete(ctx context.Context, orderID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[orderID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, orderID)
	s.Deleted = append(s.Deleted, orderID)
	return nil
}

// NotificationRepositoryStub stores notifications in-memory.
type NotificationRepositoryStub struct {
	mu sync.Mutex

	CreateFn func(context.Context, int64, string) (*model.Notification, error)
	Err      error

	Items []model.Notification
	Next  int64
}

// Create stores the notification unless the stub is configured to fail.
func (s *NotificationRepositoryStub) Create(ctx context.Context, userID int64, message string) (*model.Notification, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, message)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Next++
	n := model.Notification{ID: s.Next, UserID: userID, Message: message, CreatedAt: time.Now()}
	s.Items = append(s.Items, n)
	return &n, nil
}

// ListByUser returns stored notifications for the user.
func (s *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Notification
	for _, n := range s.Items {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

// MarkRead flips one stored notification to read.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Items {
		if s.Items[i].ID == notificationID && s.Items[i].UserID == userID {
			s.Items[i].Read = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// MarkAllRead flips all the user's stored notifications to read.
func (s *NotificationRepositoryStub) MarkAllRead(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Items {
		if s.Items[i].UserID == userID {
			s.Items[i].Read = true
		}
	}
	return nil
}

// Count returns the number of stored notifications.
func (s *NotificationRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Items)
}
