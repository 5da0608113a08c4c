package repository

import (
	"context"
	"time"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// UserRepository persists user accounts and their subscription fields.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// ActivateSubscription marks the user premium and records the plan.
	ActivateSubscription(ctx context.Context, userID int64, planType string, expiry time.Time) error

	// SetBoxQuota resets the ledger to (totalBoxes, delivered=0).
	SetBoxQuota(ctx context.Context, userID int64, totalBoxes int) error

	// ConsumeBox increments delivered boxes by one, clamped at the total, and
	// returns the resulting quota.
	ConsumeBox(ctx context.Context, userID int64) (*model.BoxQuota, error)

	GetBoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error)
}
