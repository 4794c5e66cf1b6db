package models

// PairConfig — статическая настройка торговой пары, неизменяемая после старта.
type PairConfig struct {
	Market    string  `mapstructure:"market"`
	Threshold float64 `mapstructure:"threshold"` // порог входа в процентах, отрицательный
	Decimals  int32   `mapstructure:"decimals"`  // точность размера позиции
}
