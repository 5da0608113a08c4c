package usecase

import (
	"context"
	"time"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/domain/repository"
	"github.com/nurbekov/mealbox/internal/lifecycle"
)

// planPeriods maps a plan type to its box allotment and subscription length.
var planPeriods = map[string]struct {
	Boxes    int
	Duration time.Duration
}{
	"weekly":   {Boxes: 7, Duration: 7 * 24 * time.Hour},
	"biweekly": {Boxes: 14, Duration: 14 * 24 * time.Hour},
	"monthly":  {Boxes: 30, Duration: 30 * 24 * time.Hour},
}

const defaultPlanType = "monthly"

// BoxesForPlan returns the box allotment for a plan type, falling back to the
// monthly plan for unknown tags.
func BoxesForPlan(planType string) int {
	if p, ok := planPeriods[planType]; ok {
		return p.Boxes
	}
	return planPeriods[defaultPlanType].Boxes
}

// QuotaUseCase is the box quota ledger: it gates plan-order creation against
// subscription capacity and tracks consumption.
type QuotaUseCase struct {
	users repository.UserRepository
	clock lifecycle.Clock
}

// NewQuotaUseCase constructs QuotaUseCase.
func NewQuotaUseCase(users repository.UserRepository, clock lifecycle.Clock) *QuotaUseCase {
	return &QuotaUseCase{users: users, clock: clock}
}

// Allocate resets the ledger to (totalBoxes, delivered=0). Called on
// subscription activation or upgrade.
func (u *QuotaUseCase) Allocate(ctx context.Context, userID int64, totalBoxes int) error {
	if totalBoxes <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.users.SetBoxQuota(ctx, userID, totalBoxes)
}

// Consume charges one box to the user, clamped at the total, and returns the
// resulting quota. Call at most once per successfully created plan order.
func (u *QuotaUseCase) Consume(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	return u.users.ConsumeBox(ctx, userID)
}

// Query returns the user's quota. A missing or non-positive total is lazily
// repaired from the plan lookup table before returning.
func (u *QuotaUseCase) Query(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	quota, err := u.users.GetBoxQuota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if quota.TotalBoxes > 0 {
		return quota, nil
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	repaired := BoxesForPlan(usr.PlanType)
	if err := u.users.SetBoxQuota(ctx, userID, repaired); err != nil {
		return nil, err
	}
	return &model.BoxQuota{TotalBoxes: repaired}, nil
}

// Activate marks the subscription active for the plan's period and allocates a
// fresh box quota.
func (u *QuotaUseCase) Activate(ctx context.Context, userID int64, planType string) (*model.BoxQuota, error) {
	period, ok := planPeriods[planType]
	if !ok {
		return nil, domainErrors.ErrInvalidAmount
	}

	expiry := u.clock.Now().Add(period.Duration)
	if err := u.users.ActivateSubscription(ctx, userID, planType, expiry); err != nil {
		return nil, err
	}
	if err := u.users.SetBoxQuota(ctx, userID, period.Boxes); err != nil {
		return nil, err
	}
	return &model.BoxQuota{TotalBoxes: period.Boxes}, nil
}
