// Package lifecycle implements the time-driven order state machine. Status is a
// pure function of the order's creation timestamp, so the background sweeper and
// the on-demand read path always converge on the same answer no matter how their
// calls interleave.
package lifecycle

import (
	"time"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// Stage binds a fulfillment status to the moment it begins, measured from order
// creation.
type Stage struct {
	After  time.Duration
	Status model.OrderStatus
}

// Schedule is a strictly increasing sequence of stages for one order kind. The
// first stage must start at zero and the last one must be terminal.
type Schedule []Stage

// QuickSchedule drives ad-hoc orders through the five delivery stages.
var QuickSchedule = Schedule{
	{After: 0, Status: model.OrderStatusPending},
	{After: 20 * time.Second, Status: model.OrderStatusConfirmed},
	{After: time.Minute, Status: model.OrderStatusCooking},
	{After: 4 * time.Minute, Status: model.OrderStatusOutForDelivery},
	{After: 5 * time.Minute, Status: model.OrderStatusDelivered},
}

// PlanSchedule drives subscription box orders through three stages.
var PlanSchedule = Schedule{
	{After: 0, Status: model.OrderStatusScheduled},
	{After: 2 * time.Minute, Status: model.OrderStatusInProgress},
	{After: 5 * time.Minute, Status: model.OrderStatusDelivered},
}

// ScheduleFor returns the stage schedule for the given order kind.
func ScheduleFor(kind model.OrderKind) Schedule {
	if kind == model.OrderKindPlan {
		return PlanSchedule
	}
	return QuickSchedule
}

// rank returns the position of status within the schedule, or -1.
func (s Schedule) rank(status model.OrderStatus) int {
	for i, stage := range s {
		if stage.Status == status {
			return i
		}
	}
	return -1
}

// at returns the stage whose bucket contains elapsed.
func (s Schedule) at(elapsed time.Duration) model.OrderStatus {
	status := s[0].Status
	for _, stage := range s {
		if elapsed >= stage.After {
			status = stage.Status
		}
	}
	return status
}

// StatusAt computes the status an order should have at the given instant.
// Terminal statuses are absorbing, and the result never ranks below current, so
// repeated or concurrent calls cannot regress an order.
func StatusAt(kind model.OrderKind, createdAt time.Time, current model.OrderStatus, now time.Time) model.OrderStatus {
	if current.IsTerminal() {
		return current
	}

	schedule := ScheduleFor(kind)
	computed := schedule.at(now.Sub(createdAt))

	if schedule.rank(computed) < schedule.rank(current) {
		return current
	}
	return computed
}
