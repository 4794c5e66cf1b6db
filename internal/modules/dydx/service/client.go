package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"momentum_bot/internal/modules/config"
)

// Client — подписанный REST-клиент dYdX v3. Публичные ручки ходят без
// подписи, приватные — с HMAC-заголовками.
type Client struct {
	http *http.Client
	host string

	ethAddress string
	apiKey     string
	apiSecret  string
	passph     string
	starkKey   string

	expiration time.Duration
	tickOffset int64
	limitFee   string

	mu         sync.Mutex
	positionID string // кэш после первого get_account
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		host:       cfg.Dydx.Host,
		ethAddress: cfg.Dydx.EthereumAddress,
		apiKey:     cfg.Dydx.APIKey,
		apiSecret:  cfg.Dydx.APISecret,
		passph:     cfg.Dydx.APIPassphrase,
		starkKey:   cfg.Dydx.StarkPrivateKey,
		expiration: cfg.OrderExpiration,
		tickOffset: cfg.TickOffset,
		limitFee:   cfg.LimitFee,
	}
}

func (c *Client) sign(ts, method, requestPath, body string) string {
	msg := ts + strings.ToUpper(method) + requestPath + body
	// секрет выдаётся в base64url; если не декодируется — подписываем как есть
	secret, err := base64.URLEncoding.DecodeString(c.apiSecret)
	if err != nil {
		secret = []byte(c.apiSecret)
	}
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(msg))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

func (c *Client) signedRequest(ctx context.Context, method, requestPath, body string) (*http.Request, error) {
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.host+requestPath, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("DYDX-SIGNATURE", c.sign(ts, method, requestPath, body))
	req.Header.Set("DYDX-API-KEY", c.apiKey)
	req.Header.Set("DYDX-TIMESTAMP", ts)
	req.Header.Set("DYDX-PASSPHRASE", c.passph)
	req.Header.Set("DYDX-ETHEREUM-ADDRESS", c.ethAddress)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	if err := json.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("decode: %w; body=%s", err, string(rb))
	}
	return nil
}
