package history

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"momentum_bot/internal/models"
	"momentum_bot/pkg/db"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS trade_history (
    id          BIGSERIAL PRIMARY KEY,
    market      TEXT        NOT NULL,
    from_hour   INT         NOT NULL,
    to_hour     INT         NOT NULL,
    realized_pnl NUMERIC    NOT NULL,
    balance     NUMERIC,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertSQL = `
INSERT INTO trade_history (market, from_hour, to_hour, realized_pnl, balance)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))`

// PgStore — зеркало журнала в Postgres. Файл остаётся основным носителем,
// база нужна только для выборок.
type PgStore struct {
	tm *db.PgTxManager
}

func NewPgStore(tm *db.PgTxManager) *PgStore {
	return &PgStore{tm: tm}
}

func (s *PgStore) Enabled() bool {
	return s != nil && s.tm != nil
}

func (s *PgStore) Init(ctx context.Context) error {
	err := s.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createTableSQL)
		return err
	})
	return errors.Wrap(err, "init trade_history table")
}

func (s *PgStore) Insert(ctx context.Context, rec models.HistoryRecord, balance string) error {
	err := s.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertSQL,
			rec.Market, rec.FromHour, rec.ToHour, rec.RealizedPnl, balance)
		return err
	})
	return errors.Wrap(err, "insert trade_history")
}
