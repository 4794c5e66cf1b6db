package marketdata

import (
	"context"
	"momentum_bot/internal/modules/marketdata/service"

	"go.uber.org/fx"
)

// Module поднимает стример индекс-цен dYdX.
func Module() fx.Option {
	return fx.Module("marketdata",
		fx.Provide(
			service.NewClient, // *service.Client
		),
		fx.Invoke(func(lc fx.Lifecycle, s *service.Client, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go s.Start(ctx)
					return nil
				},
			})
		}),
	)
}
