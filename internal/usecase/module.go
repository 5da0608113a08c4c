package usecase

import (
	"go.uber.org/fx"

	"github.com/nurbekov/mealbox/internal/config"
	"github.com/nurbekov/mealbox/internal/lifecycle"
	"github.com/nurbekov/mealbox/internal/pkg/ttlstore"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewQuotaUseCase,
	NewNotificationUseCase,
	newClock,
	newOrderOptions,
	ttlstore.New,
)

func newClock() lifecycle.Clock {
	return lifecycle.SystemClock{}
}

func newOrderOptions(cfg *config.Config) OrderOptions {
	return OrderOptions{DeliveryFee: cfg.DeliveryFee}
}
