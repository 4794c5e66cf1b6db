package history

import (
	"context"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("history",
		fx.Provide(
			New, // *History
		),
		fx.Invoke(func(lc fx.Lifecycle, h *History, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if h.pg.Enabled() {
						return h.pg.Init(ctx)
					}
					return nil
				},
			})
		}),
	)
}
