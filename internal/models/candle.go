package models

// Candle — часовая свеча; нужны только open/close для расчёта импульса.
type Candle struct {
	Market string `json:"market"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}
