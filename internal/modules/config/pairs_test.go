package config

import (
	"os"
	"path/filepath"
	"testing"

	"momentum_bot/internal/models"
)

func TestDefaultPairsValid(t *testing.T) {
	if err := ValidatePairs(defaultPairs); err != nil {
		t.Fatalf("default table must validate: %v", err)
	}
	if len(defaultPairs) != 10 {
		t.Fatalf("expected 10 default pairs, got %d", len(defaultPairs))
	}
}

func TestValidatePairs(t *testing.T) {
	cases := []struct {
		name  string
		pairs []models.PairConfig
	}{
		{"empty table", nil},
		{"empty market", []models.PairConfig{{Market: "", Threshold: -1, Decimals: 2}}},
		{"duplicate", []models.PairConfig{
			{Market: "BTC-USD", Threshold: -1, Decimals: 2},
			{Market: "BTC-USD", Threshold: -2, Decimals: 2},
		}},
		{"zero threshold", []models.PairConfig{{Market: "BTC-USD", Threshold: 0, Decimals: 2}}},
		{"positive threshold", []models.PairConfig{{Market: "BTC-USD", Threshold: 1.5, Decimals: 2}}},
		{"negative decimals", []models.PairConfig{{Market: "BTC-USD", Threshold: -1, Decimals: -1}}},
	}
	for _, c := range cases {
		if err := ValidatePairs(c.pairs); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}

	ok := []models.PairConfig{
		{Market: "BTC-USD", Threshold: -1.0, Decimals: 4},
		{Market: "ETH-USD", Threshold: -1.2, Decimals: 0},
	}
	if err := ValidatePairs(ok); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}
}

func TestNewPairsFromFileReplacesTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.yaml")
	yaml := "pairs:\n" +
		"  - market: SOL-USD\n" +
		"    threshold: -2.0\n" +
		"    decimals: 2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write pairs file: %v", err)
	}

	pairs, err := NewPairs(&Config{PairsFile: path})
	if err != nil {
		t.Fatalf("NewPairs: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Market != "SOL-USD" {
		t.Fatalf("expected full replacement, got %+v", pairs)
	}
	if pairs[0].Threshold != -2.0 || pairs[0].Decimals != 2 {
		t.Fatalf("unexpected pair values: %+v", pairs[0])
	}
}

func TestNewPairsDefaultsWithoutFile(t *testing.T) {
	pairs, err := NewPairs(&Config{})
	if err != nil {
		t.Fatalf("NewPairs: %v", err)
	}
	if len(pairs) != len(defaultPairs) {
		t.Fatalf("expected default table, got %d pairs", len(pairs))
	}
}

func TestNewPairsRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.yaml")
	// положительный порог должен отсекаться валидацией
	yaml := "pairs:\n" +
		"  - market: SOL-USD\n" +
		"    threshold: 2.0\n" +
		"    decimals: 2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write pairs file: %v", err)
	}

	if _, err := NewPairs(&Config{PairsFile: path}); err == nil {
		t.Fatalf("expected validation error")
	}
}
