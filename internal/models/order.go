package models

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	SideLong  = "LONG"
	SideShort = "SHORT"

	OrderTypeMarket = "MARKET"

	// FOK — закрытия, IOC — открытия.
	TimeInForceFOK = "FOK"
	TimeInForceIOC = "IOC"
)

// OrderRequest — то, что решает стратегия; цену и position_id
// подставляет клиент при отправке.
type OrderRequest struct {
	Market      string
	Side        string
	Size        string
	TimeInForce string
}
