package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"momentum_bot/internal/models"
)

// LastClosedPosition — последняя закрытая позиция по паре, из неё берём
// реализованный PnL для журнала.
func (c *Client) LastClosedPosition(ctx context.Context, market string) (models.Position, error) {
	requestPath := "/v3/positions?market=" + url.QueryEscape(market) + "&status=CLOSED"
	req, err := c.signedRequest(ctx, http.MethodGet, requestPath, "")
	if err != nil {
		return models.Position{}, err
	}

	var payload positionsResponse
	if err := c.doJSON(req, &payload); err != nil {
		return models.Position{}, fmt.Errorf("get closed positions %s: %w", market, err)
	}
	if len(payload.Positions) == 0 {
		return models.Position{}, fmt.Errorf("closed positions %s: empty", market)
	}

	pos := payload.Positions[len(payload.Positions)-1]
	if pos.Market == "" {
		pos.Market = market
	}
	return pos, nil
}
