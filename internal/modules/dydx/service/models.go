package service

import "momentum_bot/internal/models"

type accountResponse struct {
	Account struct {
		PositionID    string                     `json:"positionId"`
		QuoteBalance  string                     `json:"quoteBalance"`
		OpenPositions map[string]models.Position `json:"openPositions"`
	} `json:"account"`
}

type marketsResponse struct {
	Markets map[string]models.Market `json:"markets"`
}

type orderbookEntry struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

type orderbookResponse struct {
	Asks []orderbookEntry `json:"asks"`
	Bids []orderbookEntry `json:"bids"`
}

type candlesResponse struct {
	Candles []models.Candle `json:"candles"`
}

type positionsResponse struct {
	Positions []models.Position `json:"positions"`
}

type orderResponse struct {
	Order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"order"`
}
