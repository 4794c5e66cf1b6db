package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"momentum_bot/internal/models"
)

// CreateOrder отправляет "рыночный" ордер: тип MARKET с ограничительной
// ценой из стакана (биржа требует цену даже для рыночных). Истекает через
// OrderExpiration, если не заполнился.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) (string, error) {
	if order.Size == "" {
		return "", fmt.Errorf("CreateOrder %s: empty size", order.Market)
	}
	if order.Side != models.SideBuy && order.Side != models.SideSell {
		return "", fmt.Errorf("CreateOrder %s: unsupported side=%q", order.Market, order.Side)
	}
	tif := order.TimeInForce
	if tif == "" {
		tif = models.TimeInForceFOK
	}

	market, err := c.GetMarket(ctx, order.Market)
	if err != nil {
		return "", fmt.Errorf("CreateOrder market meta: %w", err)
	}
	tick, err := decimal.NewFromString(market.TickSize)
	if err != nil || tick.Sign() <= 0 {
		return "", fmt.Errorf("CreateOrder %s: bad tickSize %q", order.Market, market.TickSize)
	}

	bestAsk, bestBid, err := c.BestPrices(ctx, order.Market)
	if err != nil {
		return "", fmt.Errorf("CreateOrder orderbook: %w", err)
	}
	price := LimitPrice(order.Side, bestAsk, bestBid, tick, c.tickOffset)

	positionID, err := c.ensurePositionID(ctx)
	if err != nil {
		return "", fmt.Errorf("CreateOrder position id: %w", err)
	}

	body := map[string]any{
		"positionId":  positionID,
		"market":      order.Market,
		"side":        order.Side,
		"type":        models.OrderTypeMarket,
		"postOnly":    false,
		"size":        order.Size,
		"price":       price.String(),
		"limitFee":    c.limitFee,
		"timeInForce": tif,
		"expiration":  time.Now().UTC().Add(c.expiration).Format("2006-01-02T15:04:05.000Z"),
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("CreateOrder marshal: %w", err)
	}

	req, err := c.signedRequest(ctx, http.MethodPost, "/v3/orders", string(payload))
	if err != nil {
		return "", fmt.Errorf("CreateOrder new request: %w", err)
	}

	var r orderResponse
	if err := c.doJSON(req, &r); err != nil {
		return "", fmt.Errorf("CreateOrder %s %s: %w", order.Side, order.Market, err)
	}
	if r.Order.ID == "" {
		return "", fmt.Errorf("CreateOrder %s: empty order id", order.Market)
	}
	return r.Order.ID, nil
}
