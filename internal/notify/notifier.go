package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	dydx "momentum_bot/internal/modules/dydx/service"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// New выбирает нотифайер: Telegram при наличии токена, иначе stdout.
func New(token string, chatID int64, dx *dydx.Client) Notifier {
	if token == "" || chatID == 0 {
		return NewStdout()
	}
	t, err := NewTelegram(token, chatID, dx)
	if err != nil {
		log.Printf("notify: telegram init failed, falling back to stdout: %v", err)
		return NewStdout()
	}
	return t
}

// Telegram — пассивный нотифайер + две команды: /positions и /balance.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	dx     *dydx.Client
}

func NewTelegram(token string, chatID int64, dx *dydx.Client) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		dx:     dx,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// /positions — открытые позиции на dYdX
func (t *Telegram) handlePositions(ctx context.Context) {
	acc, err := t.dx.GetAccount(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения позиций: %v", err)
		return
	}
	if len(acc.OpenPositions) == 0 {
		t.Send("📭 Открытых позиций нет")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Открытые позиции:\n")
	for market, p := range acc.OpenPositions {
		fmt.Fprintf(&b, "- %s [%s] size=%s\n", market, p.Side, p.Size)
	}
	t.Send(b.String())
}

// /balance — свободный баланс в quote-валюте
func (t *Telegram) handleBalance(ctx context.Context) {
	acc, err := t.dx.GetAccount(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения баланса: %v", err)
		return
	}
	t.Sendf("💰 Баланс: $%s", acc.QuoteBalance)
}

// Start: long-polling только для команд своего чата.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message != nil && upd.Message.Chat != nil &&
					upd.Message.Chat.ID == t.chatID && upd.Message.IsCommand() {

					switch upd.Message.Command() {
					case "positions":
						go t.handlePositions(ctx)
					case "balance":
						go t.handleBalance(ctx)
					}
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {}

// Stdout — заглушка, просто логирует.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }
