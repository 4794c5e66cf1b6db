package runner

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"momentum_bot/pkg/logger"
)

// closeAll закрывает все открытые позиции встречными ордерами.
// Ошибка по одной паре не валит остальные.
func (r *Runner) closeAll(ctx context.Context) int {
	span, ctx := opentracing.StartSpanFromContext(ctx, "close_all")
	defer span.Finish()

	acc, err := r.ex.GetAccount(ctx)
	if err != nil {
		logger.Error("close: get account: %v", err)
		r.n.Sendf("❗️ Ошибка чтения аккаунта: %v", err)
		return 0
	}

	if len(acc.OpenPositions) == 0 {
		logger.Info("no open positions")
		r.n.Send("📭 Открытых позиций нет")
		return 0
	}

	closed := 0
	for market, pos := range acc.OpenPositions {
		if _, err := r.ex.ClosePosition(ctx, market, pos); err != nil {
			logger.Error("close %s: %v", market, err)
			r.n.Sendf("❗️ [%s] Ошибка закрытия: %v", market, err)
			continue
		}
		closed++
		logger.Info("closed position for %s", market)
		r.n.Sendf("✅ [%s] Позиция закрыта", market)
	}
	return closed
}
