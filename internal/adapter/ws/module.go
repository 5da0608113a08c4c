package ws

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/nurbekov/mealbox/internal/usecase"
)

// Module exposes the realtime hub to the fx graph.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Provide(func(h *Hub) usecase.Broadcaster { return h }),
	fx.Invoke(registerLifecycle),
)

type hubParams struct {
	fx.In

	Logger *slog.Logger
}

func newHub(p hubParams) *Hub {
	return NewHub(p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go hub.Run(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			hub.Stop()
			return nil
		},
	})
}
