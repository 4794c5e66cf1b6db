package runner

import (
	"context"

	"go.uber.org/fx"

	"momentum_bot/internal/modules/config"
	dydxsvc "momentum_bot/internal/modules/dydx/service"
	mdsvc "momentum_bot/internal/modules/marketdata/service"
	"momentum_bot/internal/notify"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewClock,
			// адаптеры конкретных клиентов к интерфейсам раннера
			func(dx *dydxsvc.Client) Exchange { return dx },
			func(md *mdsvc.Client) PriceSource { return md },
			func(cfg *config.Config, dx *dydxsvc.Client) notify.Notifier {
				return notify.New(cfg.Telegram.Token, cfg.Telegram.ChatID, dx)
			},
			New, // *Runner
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			n notify.Notifier,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if t, ok := n.(*notify.Telegram); ok {
						if err := t.Start(ctx); err != nil {
							return err
						}
					}
					go r.Start(ctx)
					return nil
				},
			})
		}),
	)
}
