package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"momentum_bot/internal/models"
)

// GetMarket — метаданные одной пары (tickSize, indexPrice). Публичная ручка.
func (c *Client) GetMarket(ctx context.Context, market string) (models.Market, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.host+"/v3/markets?market="+url.QueryEscape(market),
		nil,
	)
	if err != nil {
		return models.Market{}, fmt.Errorf("build request: %w", err)
	}

	var payload marketsResponse
	if err := c.doJSON(req, &payload); err != nil {
		return models.Market{}, fmt.Errorf("get market %s: %w", market, err)
	}

	m, ok := payload.Markets[market]
	if !ok {
		return models.Market{}, fmt.Errorf("market %s not found", market)
	}
	if m.TickSize == "" {
		return models.Market{}, fmt.Errorf("market %s: empty tickSize", market)
	}
	if m.Market == "" {
		m.Market = market
	}
	return m, nil
}
