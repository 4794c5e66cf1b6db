package runner

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"momentum_bot/internal/models"
	"momentum_bot/pkg/logger"
)

// recordHistory дописывает журнал по каждой паре, где в этом цикле
// закрывалась позиция: окно цикла и реализованный PnL последней закрытой.
// Ошибка записи не валит цикл.
func (r *Runner) recordHistory(ctx context.Context, w cycleWindow) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "record_history")
	defer span.Finish()

	acc, err := r.ex.GetAccount(ctx)
	if err != nil {
		logger.Error("history: get account: %v", err)
		return
	}
	if len(acc.OpenPositions) == 0 {
		return
	}

	records := make([]models.HistoryRecord, 0, len(acc.OpenPositions))
	for market := range acc.OpenPositions {
		last, err := r.ex.LastClosedPosition(ctx, market)
		if err != nil {
			logger.Error("history %s: %v", market, err)
			continue
		}
		records = append(records, models.HistoryRecord{
			Market:      market,
			FromHour:    w.From.Hour(),
			ToHour:      w.To.Hour(),
			RealizedPnl: last.RealizedPnl,
		})
	}

	if err := r.hist.Record(ctx, records, acc.QuoteBalance); err != nil {
		logger.Error("history write: %v", err)
	}
}
