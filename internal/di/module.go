package di

import (
	"go.uber.org/fx"

	"github.com/nurbekov/mealbox/internal/adapter/ws"
	"github.com/nurbekov/mealbox/internal/app"
	"github.com/nurbekov/mealbox/internal/config"
	"github.com/nurbekov/mealbox/internal/logger"
	"github.com/nurbekov/mealbox/internal/pkg/auth"
	"github.com/nurbekov/mealbox/internal/server/http/handlers"
	"github.com/nurbekov/mealbox/internal/server/http/router"
	"github.com/nurbekov/mealbox/internal/storage/postgres"
	"github.com/nurbekov/mealbox/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		ws.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.MealboxFacade) handlers.MealboxFacade { return f },
			func(h *ws.Hub) handlers.RealtimeServer { return h },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
