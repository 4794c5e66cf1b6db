package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"momentum_bot/internal/modules/config"
	"momentum_bot/pkg/logger"
)

// Client держит кэш индекс-цен из канала v3_markets. Раннер берёт цену
// отсюда, а при пустом кэше падает обратно на REST.
type Client struct {
	host     string
	wsDialer *websocket.Dialer

	mu     sync.RWMutex
	prices map[string]string // market -> indexPrice, десятичная строка
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		host:     cfg.Dydx.WSHost,
		wsDialer: &websocket.Dialer{},
		prices:   make(map[string]string),
	}
}

// IndexPrice — последняя известная индекс-цена пары.
func (c *Client) IndexPrice(market string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	px, ok := c.prices[market]
	return px, ok
}

func (c *Client) setPrice(market, px string) {
	if px == "" {
		return
	}
	c.mu.Lock()
	c.prices[market] = px
	c.mu.Unlock()
}

// Start крутит подключение до отмены контекста, с нарастающей паузой
// между реконнектами.
func (c *Client) Start(ctx context.Context) {
	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.Dial(c.host, nil)
		if err != nil {
			retry++
			logger.Error("marketdata: dial %s failed (attempt %d): %v", c.host, retry, err)
			pause := time.Duration(300*retry) * time.Millisecond
			if pause > 15*time.Second {
				pause = 15 * time.Second
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(pause):
			}
			continue
		}
		retry = 0

		_ = conn.WriteJSON(map[string]string{
			"type":    "subscribe",
			"channel": "v3_markets",
		})

		c.readLoop(ctx, conn)
		_ = conn.Close()
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("marketdata: read: %v", err)
			}
			return
		}

		var frame struct {
			Type     string          `json:"type"`
			Channel  string          `json:"channel"`
			Contents json.RawMessage `json:"contents"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil || frame.Channel != "v3_markets" {
			continue
		}

		switch frame.Type {
		case "subscribed":
			// первый кадр: {"markets": {market: {...}}}
			var initial struct {
				Markets map[string]marketUpdate `json:"markets"`
			}
			if err := json.Unmarshal(frame.Contents, &initial); err == nil {
				for market, u := range initial.Markets {
					c.setPrice(market, u.IndexPrice)
				}
			}
		case "channel_data":
			// дальше приходят дельты: {market: {...изменившиеся поля}}
			var updates map[string]marketUpdate
			if err := json.Unmarshal(frame.Contents, &updates); err == nil {
				for market, u := range updates {
					c.setPrice(market, u.IndexPrice)
				}
			}
		}
	}
}

type marketUpdate struct {
	IndexPrice string `json:"indexPrice"`
}
