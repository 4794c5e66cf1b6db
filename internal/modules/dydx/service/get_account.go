package service

import (
	"context"
	"fmt"
	"net/http"

	"momentum_bot/internal/models"
)

// GetAccount читает свежее состояние аккаунта: баланс, открытые позиции,
// position_id. Кэшируется только position_id — он нужен каждому ордеру.
func (c *Client) GetAccount(ctx context.Context) (models.Account, error) {
	req, err := c.signedRequest(ctx, http.MethodGet, "/v3/accounts/"+c.ethAddress, "")
	if err != nil {
		return models.Account{}, err
	}

	var payload accountResponse
	if err := c.doJSON(req, &payload); err != nil {
		return models.Account{}, fmt.Errorf("get account: %w", err)
	}
	if payload.Account.PositionID == "" {
		return models.Account{}, fmt.Errorf("get account: empty positionId in response")
	}

	c.mu.Lock()
	c.positionID = payload.Account.PositionID
	c.mu.Unlock()

	acc := models.Account{
		PositionID:    payload.Account.PositionID,
		QuoteBalance:  payload.Account.QuoteBalance,
		OpenPositions: payload.Account.OpenPositions,
	}
	if acc.OpenPositions == nil {
		acc.OpenPositions = map[string]models.Position{}
	}
	for market, pos := range acc.OpenPositions {
		if pos.Market == "" {
			pos.Market = market
			acc.OpenPositions[market] = pos
		}
	}
	return acc, nil
}

func (c *Client) ensurePositionID(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.positionID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}
	acc, err := c.GetAccount(ctx)
	if err != nil {
		return "", err
	}
	return acc.PositionID, nil
}
