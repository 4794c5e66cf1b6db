package models

// Position — позиция на аккаунте dYdX. Все суммы — десятичные строки,
// как их отдаёт биржа; парсим только в момент расчёта.
type Position struct {
	Market      string `json:"market"`
	Side        string `json:"side"` // LONG/SHORT
	Size        string `json:"size"`
	Status      string `json:"status"` // OPEN/CLOSED
	RealizedPnl string `json:"realizedPnl"`
}
