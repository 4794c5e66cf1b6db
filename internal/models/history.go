package models

// HistoryRecord — append-only запись журнала сделок, создаётся раз за цикл
// на каждую закрытую позицию и больше не меняется.
type HistoryRecord struct {
	Market      string
	FromHour    int
	ToHour      int
	RealizedPnl string
}
