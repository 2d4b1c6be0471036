package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const barkPushURL = "https://api.day.app/push"

// Icons switched on the sign of the day's profit.
const (
	barkIconProfit = "https://cdn-icons-png.flaticon.com/512/3177/3177440.png"
	barkIconLoss   = "https://cdn-icons-png.flaticon.com/512/2567/2567520.png"
)

// BarkNotifier pushes messages to an iPhone via the Bark app.
type BarkNotifier struct {
	DeviceKey string
	Client    *http.Client
}

// NewBarkNotifier creates a notifier with optional proxy support.
func NewBarkNotifier(deviceKey, proxyURL string) *BarkNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BarkNotifier{
		DeviceKey: deviceKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// PushDailyReport sends the portfolio report. Icon and group vary with the
// sign of profit so the notification itself signals how the day went.
func (b *BarkNotifier) PushDailyReport(body string, profit float64) error {
	title := fmt.Sprintf("📅 投资日报 (%s)", time.Now().Format("01-02"))

	icon := barkIconLoss
	group := "我的定投(蓄力中)"
	if profit >= 0 {
		icon = barkIconProfit
		group = "我的定投(赚钱中)"
	}

	payload := map[string]interface{}{
		"device_key": b.DeviceKey,
		"title":      title,
		"body":       body,
		"group":      group,
		"icon":       icon,
		"sound":      "glass",
		"level":      "active",
		"url":        "https://finance.yahoo.com/quote/SPY",
		"isArchive":  1,
		"badge":      1,
	}
	return b.post(payload)
}

// Send pushes a plain message under the monitoring group.
func (b *BarkNotifier) Send(text string) error {
	payload := map[string]interface{}{
		"device_key": b.DeviceKey,
		"title":      "长期定投监控",
		"body":       text,
		"group":      "长期定投监控",
		"isArchive":  1,
	}
	return b.post(payload)
}

func (b *BarkNotifier) post(payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal bark payload: %w", err)
	}
	resp, err := b.Client.Post(barkPushURL, "application/json; charset=utf-8", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bark push: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bark API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// PushWithRetry sends the daily report with exponential backoff retry.
func (b *BarkNotifier) PushWithRetry(ctx context.Context, body string, profit float64, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := b.PushDailyReport(body, profit); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Bark push failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
