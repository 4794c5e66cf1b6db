package history

import (
	"os"
	"path/filepath"
	"testing"

	"momentum_bot/internal/models"
)

func TestWriterAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_history.txt")
	w := NewWriter(path)

	records := []models.HistoryRecord{
		{Market: "BTC-USD", FromHour: 10, ToHour: 11, RealizedPnl: "12.5"},
		{Market: "ETH-USD", FromHour: 10, ToHour: 11, RealizedPnl: "-3.2"},
	}
	if err := w.Append(records, "10123.45"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Trade executed with BTC-USD from 10h to 11h\n" +
		"Realized PNL: 12.5\n" +
		"Trade executed with ETH-USD from 10h to 11h\n" +
		"Realized PNL: -3.2\n" +
		"Current Balance: $10123.45\n"
	if string(data) != want {
		t.Fatalf("unexpected journal:\n%q\nwant:\n%q", string(data), want)
	}

	// повторный цикл дописывает, не перетирает
	if err := w.Append(records[:1], "10100"); err != nil {
		t.Fatalf("second Append: %v", err)
	}
	data, _ = os.ReadFile(path)
	if len(data) <= len(want) {
		t.Fatalf("expected appended journal, got %d bytes", len(data))
	}
}

func TestWriterAppendEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_history.txt")
	w := NewWriter(path)

	if err := w.Append(nil, "10000"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// без закрытых позиций файл не создаётся и баланс не печатается
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat err=%v", err)
	}
}
