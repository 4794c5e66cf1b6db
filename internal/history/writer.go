package history

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"momentum_bot/internal/models"
)

// Writer — append-only текстовый журнал сделок. Формат строк повторяет
// исходный trade_history.txt, ротации и внешних читателей нет.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append дописывает записи одного цикла; баланс печатается один раз в конце
// и только когда были закрытые позиции.
func (w *Writer) Append(records []models.HistoryRecord, balance string) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "Trade executed with %s from %dh to %dh\n", r.Market, r.FromHour, r.ToHour)
		fmt.Fprintf(&b, "Realized PNL: %s\n", r.RealizedPnl)
	}
	if balance != "" {
		fmt.Fprintf(&b, "Current Balance: $%s\n", balance)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open history file")
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return errors.Wrap(err, "write history")
	}
	return nil
}
