package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/nurbekov/mealbox/internal/config"
	"github.com/nurbekov/mealbox/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade   handlers.MealboxFacade
	Realtime handlers.RealtimeServer
	Config   *config.Config
	Logger   *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Realtime, p.Config.AdminToken, p.Logger)
}
