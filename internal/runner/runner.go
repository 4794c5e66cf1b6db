package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"

	"momentum_bot/internal/history"
	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
	"momentum_bot/internal/notify"
	"momentum_bot/pkg/logger"
)

// Exchange — то, что нужно часовому циклу от биржевого клиента.
type Exchange interface {
	GetAccount(ctx context.Context) (models.Account, error)
	GetMarket(ctx context.Context, market string) (models.Market, error)
	LastClosedCandle(ctx context.Context, market string) (models.Candle, error)
	LastClosedPosition(ctx context.Context, market string) (models.Position, error)
	CreateOrder(ctx context.Context, order models.OrderRequest) (string, error)
	ClosePosition(ctx context.Context, market string, pos models.Position) (string, error)
}

// PriceSource — кэш индекс-цен из вебсокета; при промахе раннер идёт по REST.
type PriceSource interface {
	IndexPrice(market string) (string, bool)
}

// Runner гоняет часовой цикл: закрыть всё -> пауза -> оценить и открыть ->
// записать журнал. Полностью последовательный, без параллелизма внутри цикла.
type Runner struct {
	cfg    *config.Config
	pairs  []models.PairConfig
	ex     Exchange
	prices PriceSource
	hist   *history.History
	n      notify.Notifier
	clock  Clock

	buffer decimal.Decimal // множитель делителя аллокации, обычно 1.0125
}

func New(
	cfg *config.Config,
	pairs []models.PairConfig,
	ex Exchange,
	prices PriceSource,
	hist *history.History,
	n notify.Notifier,
	clock Clock,
) (*Runner, error) {
	buffer, err := decimal.NewFromString(cfg.AllocationBuffer)
	if err != nil || buffer.Sign() <= 0 {
		return nil, fmt.Errorf("bad allocation buffer %q", cfg.AllocationBuffer)
	}
	return &Runner{
		cfg:    cfg,
		pairs:  pairs,
		ex:     ex,
		prices: prices,
		hist:   hist,
		n:      n,
		clock:  clock,
		buffer: buffer,
	}, nil
}

// cycleWindow — фактическое окно цикла: от прошлой часовой границы до
// текущей. Считается в момент срабатывания триггера, а не как now()-1,
// чтобы после зависания в журнал попадал настоящий интервал.
type cycleWindow struct {
	From time.Time
	To   time.Time
}

// Start крутит цикл до отмены контекста.
func (r *Runner) Start(ctx context.Context) {
	r.n.Sendf("🤖 Бот запущен: %d пар, цикл раз в час", len(r.pairs))
	for {
		window, ok := r.waitNextHour(ctx)
		if !ok {
			return
		}
		r.runCycle(ctx, window)
	}
}

// waitNextHour блокируется, пока часы не перевалят за границу часа.
// Триггер грубый: опрос раз в HourPollInterval, дрейф до интервала ожидаем.
func (r *Runner) waitNextHour(ctx context.Context) (cycleWindow, bool) {
	startHour := r.clock.Now().Hour()
	logger.Info("waiting for hour %d", (startHour+1)%24)

	for r.clock.Now().Hour() == startHour {
		if ctx.Err() != nil {
			return cycleWindow{}, false
		}
		r.clock.Sleep(ctx, r.cfg.HourPollInterval)
	}
	if ctx.Err() != nil {
		return cycleWindow{}, false
	}

	to := r.clock.Now().Truncate(time.Hour)
	return cycleWindow{From: to.Add(-time.Hour), To: to}, true
}

func (r *Runner) runCycle(ctx context.Context, w cycleWindow) {
	span := opentracing.StartSpan("hourly_cycle")
	span.SetTag("from_hour", w.From.Hour())
	span.SetTag("to_hour", w.To.Hour())
	defer span.Finish()
	ctx = opentracing.ContextWithSpan(ctx, span)

	closed := r.closeAll(ctx)

	r.n.Sendf("⏳ Анализ рынка через %s", r.cfg.Cooldown)
	r.clock.Sleep(ctx, r.cfg.Cooldown)
	if ctx.Err() != nil {
		return
	}

	opened := r.evaluateAndOpen(ctx)
	r.recordHistory(ctx, w)

	logger.Info("cycle %dh->%dh done: closed=%d opened=%d",
		w.From.Hour(), w.To.Hour(), closed, opened)
}
