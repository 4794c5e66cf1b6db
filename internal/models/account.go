package models

// Account — срез состояния аккаунта, читается заново перед каждым решением.
type Account struct {
	PositionID    string
	QuoteBalance  string
	OpenPositions map[string]Position // market -> позиция, максимум одна на пару
}
