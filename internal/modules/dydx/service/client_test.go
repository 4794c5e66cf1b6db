package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"momentum_bot/internal/models"
	"momentum_bot/internal/modules/config"
)

// стенд dYdX v3: все ручки, которые дергает клиент, плюс захват тела ордера.
type dydxStub struct {
	srv *httptest.Server

	accountHits int32
	orderBodies []map[string]any
}

func newDydxStub(t *testing.T) *dydxStub {
	t.Helper()
	s := &dydxStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/markets", func(w http.ResponseWriter, r *http.Request) {
		market := r.URL.Query().Get("market")
		io.WriteString(w, `{"markets":{"`+market+`":{"market":"`+market+`","tickSize":"0.5","indexPrice":"100.1","status":"ONLINE"}}}`)
	})
	mux.HandleFunc("/v3/orderbook/", func(w http.ResponseWriter, r *http.Request) {
		// намеренно неотсортировано: лучший ask 100.3, лучший bid 100
		io.WriteString(w, `{"asks":[{"price":"100.8","size":"1"},{"price":"100.3","size":"2"}],`+
			`"bids":[{"price":"99.5","size":"1"},{"price":"100","size":"3"}]}`)
	})
	mux.HandleFunc("/v3/accounts/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.accountHits, 1)
		if r.Header.Get("DYDX-SIGNATURE") == "" || r.Header.Get("DYDX-API-KEY") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"account":{"positionId":"12345","quoteBalance":"10000",`+
			`"openPositions":{"BTC-USD":{"side":"LONG","size":"0.5","status":"OPEN"}}}}`)
	})
	mux.HandleFunc("/v3/candles/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candles":[{"open":"101","close":"102"},{"open":"100","close":"98"}]}`)
	})
	mux.HandleFunc("/v3/positions", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"positions":[{"market":"BTC-USD","status":"CLOSED","realizedPnl":"1.1"},`+
			`{"market":"BTC-USD","status":"CLOSED","realizedPnl":"-4.2"}]}`)
	})
	mux.HandleFunc("/v3/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.orderBodies = append(s.orderBodies, body)
		io.WriteString(w, `{"order":{"id":"order-abc","status":"PENDING"}}`)
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func newTestClient(host string) *Client {
	cfg := &config.Config{
		OrderExpiration: 2 * time.Minute,
		TickOffset:      20,
		LimitFee:        "0.1",
	}
	cfg.Dydx.Host = host
	cfg.Dydx.EthereumAddress = "0xdeadbeef"
	cfg.Dydx.APIKey = "key"
	cfg.Dydx.APISecret = "c2VjcmV0"
	cfg.Dydx.APIPassphrase = "pass"
	return NewClient(cfg)
}

func TestGetAccount(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	acc, err := c.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acc.PositionID != "12345" || acc.QuoteBalance != "10000" {
		t.Fatalf("unexpected account: %+v", acc)
	}
	pos, ok := acc.OpenPositions["BTC-USD"]
	if !ok || pos.Market != "BTC-USD" || pos.Side != models.SideLong {
		t.Fatalf("expected filled BTC-USD position, got %+v", acc.OpenPositions)
	}
}

func TestLastClosedCandleSkipsForming(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	candle, err := c.LastClosedCandle(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("LastClosedCandle: %v", err)
	}
	// [0] ещё формируется, берётся [1]
	if candle.Open != "100" || candle.Close != "98" {
		t.Fatalf("expected closed candle 100->98, got %+v", candle)
	}
}

func TestLastClosedPositionTakesLast(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	pos, err := c.LastClosedPosition(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("LastClosedPosition: %v", err)
	}
	if pos.RealizedPnl != "-4.2" {
		t.Fatalf("expected last closed position, got %+v", pos)
	}
}

func TestBestPrices(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	ask, bid, err := c.BestPrices(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("BestPrices: %v", err)
	}
	if !ask.Equal(d("100.3")) || !bid.Equal(d("100")) {
		t.Fatalf("expected ask=100.3 bid=100, got ask=%s bid=%s", ask, bid)
	}
}

func TestCreateOrderBuildsMarketOrder(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	id, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Market:      "BTC-USD",
		Side:        models.SideBuy,
		Size:        "0.1",
		TimeInForce: models.TimeInForceIOC,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if id != "order-abc" {
		t.Fatalf("expected order id, got %q", id)
	}
	if len(stub.orderBodies) != 1 {
		t.Fatalf("expected 1 order posted, got %d", len(stub.orderBodies))
	}

	body := stub.orderBodies[0]
	want := map[string]string{
		"positionId":  "12345",
		"market":      "BTC-USD",
		"side":        "BUY",
		"type":        "MARKET",
		"size":        "0.1",
		"price":       "110.5", // ask 100.3 + 20*0.5, по тику
		"limitFee":    "0.1",
		"timeInForce": "IOC",
	}
	for k, v := range want {
		if body[k] != v {
			t.Fatalf("order body %s: expected %q, got %v", k, v, body[k])
		}
	}
	if body["postOnly"] != false {
		t.Fatalf("expected postOnly=false, got %v", body["postOnly"])
	}
	exp, _ := body["expiration"].(string)
	if !strings.HasSuffix(exp, "Z") {
		t.Fatalf("expected ISO expiration, got %q", exp)
	}
}

func TestCreateOrderDefaultsToFOK(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	if _, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Market: "BTC-USD",
		Side:   models.SideSell,
		Size:   "0.2",
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	body := stub.orderBodies[0]
	if body["timeInForce"] != "FOK" {
		t.Fatalf("expected FOK by default, got %v", body["timeInForce"])
	}
	if body["price"] != "90" { // bid 100 - 20*0.5
		t.Fatalf("expected sell price 90, got %v", body["price"])
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	c := newTestClient("http://unreachable.invalid")

	if _, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Market: "BTC-USD", Side: models.SideBuy,
	}); err == nil {
		t.Fatalf("expected error for empty size")
	}
	if _, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Market: "BTC-USD", Side: "LONG", Size: "1",
	}); err == nil {
		t.Fatalf("expected error for unsupported side")
	}
}

func TestClosePositionSides(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	// лонг закрывается продажей всего объёма
	if _, err := c.ClosePosition(context.Background(), "BTC-USD", models.Position{
		Side: models.SideLong, Size: "0.5",
	}); err != nil {
		t.Fatalf("close long: %v", err)
	}
	// шорт — покупкой, размер по модулю
	if _, err := c.ClosePosition(context.Background(), "ETH-USD", models.Position{
		Side: models.SideShort, Size: "-2",
	}); err != nil {
		t.Fatalf("close short: %v", err)
	}

	if len(stub.orderBodies) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(stub.orderBodies))
	}
	long, short := stub.orderBodies[0], stub.orderBodies[1]
	if long["side"] != "SELL" || long["size"] != "0.5" || long["timeInForce"] != "FOK" {
		t.Fatalf("unexpected long close: %v", long)
	}
	if short["side"] != "BUY" || short["size"] != "2" {
		t.Fatalf("unexpected short close: %v", short)
	}
}

func TestPositionIDCachedAfterAccount(t *testing.T) {
	stub := newDydxStub(t)
	c := newTestClient(stub.srv.URL)

	if _, err := c.GetAccount(context.Background()); err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if _, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Market: "BTC-USD", Side: models.SideBuy, Size: "0.1",
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if hits := atomic.LoadInt32(&stub.accountHits); hits != 1 {
		t.Fatalf("expected cached positionId, accounts hit %d times", hits)
	}
}
