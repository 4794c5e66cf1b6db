package models

type Market struct {
	Market     string `json:"market"`
	TickSize   string `json:"tickSize"`
	IndexPrice string `json:"indexPrice"`
	Status     string `json:"status"`
}
