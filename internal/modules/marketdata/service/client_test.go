package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"momentum_bot/internal/modules/config"
	"momentum_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestIndexPriceCache(t *testing.T) {
	c := &Client{prices: make(map[string]string)}

	if _, ok := c.IndexPrice("BTC-USD"); ok {
		t.Fatalf("expected cache miss")
	}

	c.setPrice("BTC-USD", "50000.5")
	px, ok := c.IndexPrice("BTC-USD")
	if !ok || px != "50000.5" {
		t.Fatalf("expected 50000.5, got %q ok=%v", px, ok)
	}

	// пустое обновление не затирает цену
	c.setPrice("BTC-USD", "")
	if px, _ := c.IndexPrice("BTC-USD"); px != "50000.5" {
		t.Fatalf("empty update must be ignored, got %q", px)
	}
}

func TestStartFeedsCacheFromStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// ждём подписку на v3_markets
		var sub map[string]string
		if err := conn.ReadJSON(&sub); err != nil || sub["channel"] != "v3_markets" {
			return
		}

		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			`{"type":"subscribed","channel":"v3_markets",`+
				`"contents":{"markets":{"BTC-USD":{"indexPrice":"50000"},"ETH-USD":{"indexPrice":"2000"}}}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			`{"type":"channel_data","channel":"v3_markets",`+
				`"contents":{"BTC-USD":{"indexPrice":"50123"}}}`))

		// держим соединение, пока клиент не отвалится по отмене контекста
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Dydx.WSHost = "ws" + strings.TrimPrefix(srv.URL, "http")
	c := NewClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Start(ctx)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if px, ok := c.IndexPrice("BTC-USD"); ok && px == "50123" {
			if eth, _ := c.IndexPrice("ETH-USD"); eth != "2000" {
				t.Fatalf("expected ETH snapshot price, got %q", eth)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("price never reached cache")
}
