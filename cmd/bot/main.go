package main

import (
	"context"
	"log"
	"momentum_bot/internal/history"
	"momentum_bot/internal/modules/config"
	"momentum_bot/internal/modules/dydx"
	"momentum_bot/internal/modules/marketdata"
	"momentum_bot/internal/modules/postgres"

	"momentum_bot/internal/runner"

	"momentum_bot/pkg/logger"
	"momentum_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("momentum_bot")
	tracing.SetServiceName("momentum_bot")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		dydx.Module(),
		marketdata.Module(),
		history.Module(),
		runner.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if cfg.Jaeger.Host == "" {
				return nil
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
