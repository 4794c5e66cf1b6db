package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"momentum_bot/internal/models"

	"github.com/spf13/viper"
)

// Таблицы из исходной стратегии: топ-10 пар dYdX по капитализации,
// пороги подобраны под волатильность каждой пары.
var defaultPairs = []models.PairConfig{
	{Market: "BTC-USD", Threshold: -1.0, Decimals: 4},
	{Market: "ETH-USD", Threshold: -1.2, Decimals: 3},
	{Market: "XRP-USD", Threshold: -1.8, Decimals: 4},
	{Market: "BNB-USD", Threshold: -1.5, Decimals: 2},
	{Market: "SOL-USD", Threshold: -2.0, Decimals: 2},
	{Market: "DOGE-USD", Threshold: -2.2, Decimals: 5},
	{Market: "ADA-USD", Threshold: -1.9, Decimals: 4},
	{Market: "TRX-USD", Threshold: -1.8, Decimals: 5},
	{Market: "LINK-USD", Threshold: -1.7, Decimals: 3},
	{Market: "SUI-USD", Threshold: -2.1, Decimals: 4},
}

// NewPairs отдаёт таблицу пар: дефолтную либо целиком из pairs_file.
// Частичных оверрайдов нет — или весь файл, или зашитая таблица.
func NewPairs(cfg *Config) ([]models.PairConfig, error) {
	pairs := defaultPairs

	if cfg.PairsFile != "" {
		v := viper.New()
		dir, name := filepath.Split(cfg.PairsFile)
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(strings.TrimSuffix(name, filepath.Ext(name)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read pairs file %s: %w", cfg.PairsFile, err)
		}
		var fromFile []models.PairConfig
		if err := v.UnmarshalKey("pairs", &fromFile); err != nil {
			return nil, fmt.Errorf("unmarshal pairs file: %w", err)
		}
		if len(fromFile) == 0 {
			return nil, fmt.Errorf("pairs file %s has no pairs", cfg.PairsFile)
		}
		pairs = fromFile
	}

	if err := ValidatePairs(pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// ValidatePairs проверяет инвариант конфигурации: у каждой пары есть и порог,
// и точность, порог отрицательный, точность неотрицательная, дублей нет.
func ValidatePairs(pairs []models.PairConfig) error {
	if len(pairs) == 0 {
		return fmt.Errorf("empty pairs table")
	}
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if p.Market == "" {
			return fmt.Errorf("pair with empty market")
		}
		if seen[p.Market] {
			return fmt.Errorf("duplicate pair %s", p.Market)
		}
		seen[p.Market] = true
		if p.Threshold >= 0 {
			return fmt.Errorf("pair %s: entry threshold must be negative, got %.2f", p.Market, p.Threshold)
		}
		if p.Decimals < 0 {
			return fmt.Errorf("pair %s: decimals must be >= 0, got %d", p.Market, p.Decimals)
		}
	}
	return nil
}
