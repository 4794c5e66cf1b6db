package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"momentum_bot/internal/models"
)

// ClosePosition гасит позицию встречным ордером ровно на её объём:
// лонг закрывается продажей, шорт — покупкой. FOK по умолчанию.
func (c *Client) ClosePosition(ctx context.Context, market string, pos models.Position) (string, error) {
	size, err := decimal.NewFromString(pos.Size)
	if err != nil {
		return "", fmt.Errorf("ClosePosition %s: bad size %q", market, pos.Size)
	}
	if size.IsZero() {
		return "", fmt.Errorf("ClosePosition %s: zero size", market)
	}

	side := models.SideSell
	if pos.Side == models.SideShort {
		side = models.SideBuy
	}

	return c.CreateOrder(ctx, models.OrderRequest{
		Market:      market,
		Side:        side,
		Size:        size.Abs().String(),
		TimeInForce: models.TimeInForceFOK,
	})
}
