package dydx

import (
	"momentum_bot/internal/modules/dydx/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("dydx",
		fx.Provide(
			service.NewClient, // *service.Client
		),
	)
}
