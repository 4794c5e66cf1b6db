package postgres

import (
	"context"
	"fmt"
	"momentum_bot/internal/modules/config"
	"momentum_bot/pkg/db"

	"go.uber.org/fx"
)

// Module регистрируем как fx-провайдер. База опциональна: без DSN
// отдаём nil-менеджер, журнал сделок остаётся только файловым.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					return nil, nil
				}

				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				err = poolMaster.Ping(ctx)
				if err != nil {
					return nil, err
				}

				return db.NewPgTxManager(poolMaster), nil
			},
		),
	)
}
