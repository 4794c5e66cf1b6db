package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"momentum_bot/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuantizeToTick(t *testing.T) {
	cases := []struct {
		px, tick, want string
	}{
		{"110.3", "0.5", "110.5"},
		{"110.2", "0.5", "110"},
		{"0.061234", "0.0001", "0.0612"},
		{"100", "1", "100"},
	}
	for _, c := range cases {
		got := QuantizeToTick(d(c.px), d(c.tick))
		if !got.Equal(d(c.want)) {
			t.Fatalf("quantize(%s, %s): expected %s, got %s", c.px, c.tick, c.want, got)
		}
	}

	// нулевой тик не трогает цену
	if got := QuantizeToTick(d("110.3"), decimal.Zero); !got.Equal(d("110.3")) {
		t.Fatalf("zero tick must keep price, got %s", got)
	}
}

func TestLimitPrice(t *testing.T) {
	ask := d("100.3")
	bid := d("100")
	tick := d("0.5")

	// buy = bestAsk + 20*tick, выровнено по тику
	buy := LimitPrice(models.SideBuy, ask, bid, tick, 20)
	if !buy.Equal(d("110.5")) {
		t.Fatalf("buy: expected 110.5, got %s", buy)
	}

	// sell = bestBid - 20*tick
	sell := LimitPrice(models.SideSell, ask, bid, tick, 20)
	if !sell.Equal(d("90")) {
		t.Fatalf("sell: expected 90, got %s", sell)
	}
}
