package history

import (
	"context"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
	"momentum_bot/pkg/db"
	"momentum_bot/pkg/logger"
)

// History пишет журнал сделок в файл и, если настроена база, зеркалит туда же.
// Ошибка зеркала не фатальна; ошибку файла решает вызывающий.
type History struct {
	w  *Writer
	pg *PgStore
}

func New(cfg *config.Config, tm *db.PgTxManager) *History {
	return &History{
		w:  NewWriter(cfg.HistoryFile),
		pg: NewPgStore(tm),
	}
}

func (h *History) Record(ctx context.Context, records []models.HistoryRecord, balance string) error {
	if h.pg.Enabled() {
		for _, r := range records {
			if err := h.pg.Insert(ctx, r, balance); err != nil {
				logger.Error("history: pg mirror failed: %v", err)
				break
			}
		}
	}
	return h.w.Append(records, balance)
}
