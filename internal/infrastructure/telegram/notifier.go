// Package telegram delivers report digests through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/ports"
)

const apiBase = "https://api.telegram.org"

// Notifier sends a short digest of each finished report to a chat.
type Notifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier builds the notifier from configuration.
func NewNotifier(cfg config.TelegramConfig) *Notifier {
	return &Notifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Configured reports whether credentials are present.
func (n *Notifier) Configured() bool {
	return n.botToken != "" && n.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// PublishDigest sends the executive summary and headline numbers.
func (n *Notifier) PublishDigest(ctx context.Context, report domain.AggregateReport) error {
	if !n.Configured() {
		return fmt.Errorf("telegram notifier not configured")
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      digestText(report),
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send digest: unexpected status %s", resp.Status)
	}
	return nil
}

func digestText(report domain.AggregateReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Market pulse: %s*\n\n", report.Location)
	fmt.Fprintf(&sb, "%s\n\n", report.Narrative.ExecutiveSummary)
	fmt.Fprintf(&sb, "Overall: %s (avg %.2f, %d items)\n",
		report.Overall.OverallSentiment, report.Overall.AvgScore, report.TotalItems)
	fmt.Fprintf(&sb, "Recommendation: %s\n", report.Narrative.Recommendation)
	if report.Narrative.BestSource != "" {
		fmt.Fprintf(&sb, "Most positive source: %s\n", report.Narrative.BestSource)
	}
	return sb.String()
}
