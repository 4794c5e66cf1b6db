package runner

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"

	"momentum_bot/internal/models"
	"momentum_bot/pkg/logger"
)

// PriceChangePct = (close - open) / open * 100, десятичная арифметика.
func PriceChangePct(c models.Candle) (decimal.Decimal, error) {
	open, err := decimal.NewFromString(c.Open)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad open %q", c.Open)
	}
	cl, err := decimal.NewFromString(c.Close)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad close %q", c.Close)
	}
	if open.Sign() == 0 {
		return decimal.Zero, fmt.Errorf("zero open")
	}
	return cl.Sub(open).Div(open).Mul(decimal.NewFromInt(100)), nil
}

// AllocationPerPair = balance / (n * buffer). Завышенный делитель оставляет
// ~1.25% баланса на комиссии и проскальзывание всех открытий разом.
func AllocationPerPair(balance decimal.Decimal, n int, buffer decimal.Decimal) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return balance.Div(decimal.NewFromInt(int64(n)).Mul(buffer))
}

// PositionSize = round(alloc/price, decimals); decimals==0 — до целого.
func PositionSize(alloc, price decimal.Decimal, decimals int32) (decimal.Decimal, error) {
	if price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("price <= 0: %s", price)
	}
	return alloc.Div(price).Round(decimals), nil
}

// qualifyingPairs — пары, упавшие за последнюю закрытую свечу не слабее
// своего порога. Каждая пара оценивается независимо, только по своей свече.
func (r *Runner) qualifyingPairs(ctx context.Context) []models.PairConfig {
	quals := make([]models.PairConfig, 0, len(r.pairs))
	for _, p := range r.pairs {
		candle, err := r.ex.LastClosedCandle(ctx, p.Market)
		if err != nil {
			logger.Error("evaluate %s: %v", p.Market, err)
			continue
		}
		pct, err := PriceChangePct(candle)
		if err != nil {
			logger.Error("evaluate %s: %v", p.Market, err)
			continue
		}
		logger.Info("%s: %s%%", p.Market, pct.StringFixed(2))
		if pct.LessThanOrEqual(decimal.NewFromFloat(p.Threshold)) {
			quals = append(quals, p)
		}
	}
	return quals
}

func (r *Runner) evaluateAndOpen(ctx context.Context) int {
	span, ctx := opentracing.StartSpanFromContext(ctx, "evaluate_and_open")
	defer span.Finish()

	quals := r.qualifyingPairs(ctx)
	if len(quals) == 0 {
		logger.Info("no qualifying pairs, zero positions opened")
		r.n.Send("📉 Подходящих пар нет, позиции не открыты")
		return 0
	}

	acc, err := r.ex.GetAccount(ctx)
	if err != nil {
		logger.Error("open: get account: %v", err)
		r.n.Sendf("❗️ Ошибка чтения баланса: %v", err)
		return 0
	}
	balance, err := decimal.NewFromString(acc.QuoteBalance)
	if err != nil {
		logger.Error("open: bad quote balance %q", acc.QuoteBalance)
		return 0
	}

	alloc := AllocationPerPair(balance, len(quals), r.buffer)
	if alloc.Sign() <= 0 {
		// нулевая аллокация — открываться нельзя
		logger.Error("allocation <= 0 (balance=%s), skip opening", acc.QuoteBalance)
		return 0
	}

	opened := 0
	for _, p := range quals {
		size, err := r.positionSize(ctx, p, alloc)
		if err != nil {
			logger.Error("open %s: %v", p.Market, err)
			continue
		}
		if size.Sign() <= 0 {
			logger.Info("open %s: size rounded to zero, skip", p.Market)
			continue
		}

		_, err = r.ex.CreateOrder(ctx, models.OrderRequest{
			Market:      p.Market,
			Side:        models.SideBuy,
			Size:        size.String(),
			TimeInForce: models.TimeInForceIOC,
		})
		if err != nil {
			logger.Error("open %s: %v", p.Market, err)
			r.n.Sendf("❗️ [%s] Ошибка открытия: %v", p.Market, err)
			continue
		}
		opened++
		logger.Info("opened long position for %s size=%s", p.Market, size)
		r.n.Sendf("📈 [%s] Открыт лонг, size=%s", p.Market, size)
	}

	r.n.Sendf("Итого открыто позиций: %d", opened)
	return opened
}

// positionSize берёт индекс-цену из ws-кэша, при промахе — по REST.
func (r *Runner) positionSize(ctx context.Context, p models.PairConfig, alloc decimal.Decimal) (decimal.Decimal, error) {
	var pxStr string
	if r.prices != nil {
		if v, ok := r.prices.IndexPrice(p.Market); ok {
			pxStr = v
		}
	}
	if pxStr == "" {
		m, err := r.ex.GetMarket(ctx, p.Market)
		if err != nil {
			return decimal.Zero, fmt.Errorf("index price: %w", err)
		}
		pxStr = m.IndexPrice
	}

	price, err := decimal.NewFromString(pxStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad index price %q", pxStr)
	}
	return PositionSize(alloc, price, p.Decimals)
}
