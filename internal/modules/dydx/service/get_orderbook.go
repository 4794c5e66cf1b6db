package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// BestPrices — лучшие ask/bid из стакана: минимальный ask и максимальный bid.
func (c *Client) BestPrices(ctx context.Context, market string) (bestAsk, bestBid decimal.Decimal, err error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.host+"/v3/orderbook/"+market,
		nil,
	)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("build request: %w", err)
	}

	var payload orderbookResponse
	if err := c.doJSON(req, &payload); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("get orderbook %s: %w", market, err)
	}
	if len(payload.Asks) == 0 || len(payload.Bids) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("orderbook %s: empty side asks=%d bids=%d",
			market, len(payload.Asks), len(payload.Bids))
	}

	for i, a := range payload.Asks {
		px, perr := decimal.NewFromString(a.Price)
		if perr != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("orderbook %s: bad ask price %q", market, a.Price)
		}
		if i == 0 || px.LessThan(bestAsk) {
			bestAsk = px
		}
	}
	for i, b := range payload.Bids {
		px, perr := decimal.NewFromString(b.Price)
		if perr != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("orderbook %s: bad bid price %q", market, b.Price)
		}
		if i == 0 || px.GreaterThan(bestBid) {
			bestBid = px
		}
	}
	return bestAsk, bestBid, nil
}
