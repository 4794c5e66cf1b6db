package service

import (
	"github.com/shopspring/decimal"

	"momentum_bot/internal/models"
)

// LimitPrice — ограничительная цена "рыночного" ордера: для покупки
// bestAsk + offset*tick, для продажи bestBid - offset*tick. Запас в 20 тиков
// даёт ордеру заполниться сразу об текущую ликвидность.
func LimitPrice(side string, bestAsk, bestBid, tick decimal.Decimal, offset int64) decimal.Decimal {
	step := tick.Mul(decimal.NewFromInt(offset))

	var px decimal.Decimal
	if side == models.SideBuy {
		px = bestAsk.Add(step)
	} else {
		px = bestBid.Sub(step)
	}
	return QuantizeToTick(px, tick)
}

// QuantizeToTick приводит цену к шагу цены пары.
func QuantizeToTick(px, tick decimal.Decimal) decimal.Decimal {
	if tick.Sign() <= 0 {
		return px
	}
	return px.Div(tick).Round(0).Mul(tick)
}
