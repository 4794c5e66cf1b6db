package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"momentum_bot/internal/models"
)

// LastClosedCandle — последняя полностью закрытая часовая свеча.
// Биржа отдаёт свечи от новых к старым: [0] ещё формируется, берём [1].
func (c *Client) LastClosedCandle(ctx context.Context, market string) (models.Candle, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.host+"/v3/candles/"+market+"?resolution="+url.QueryEscape("1HOUR")+"&limit=2",
		nil,
	)
	if err != nil {
		return models.Candle{}, fmt.Errorf("build request: %w", err)
	}

	var payload candlesResponse
	if err := c.doJSON(req, &payload); err != nil {
		return models.Candle{}, fmt.Errorf("get candles %s: %w", market, err)
	}
	if len(payload.Candles) < 2 {
		return models.Candle{}, fmt.Errorf("candles %s: got %d, need 2", market, len(payload.Candles))
	}

	candle := payload.Candles[1]
	if candle.Open == "" || candle.Close == "" {
		return models.Candle{}, fmt.Errorf("candles %s: empty open/close", market)
	}
	if candle.Market == "" {
		candle.Market = market
	}
	return candle, nil
}
