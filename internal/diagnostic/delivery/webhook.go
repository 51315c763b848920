package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"monpro-diagnostic/internal/common/config"
	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

var ErrWebhookDelivery = errors.New("WEBHOOK_DELIVERY_ERROR")

const webhookInitialBackoff = 500 * time.Millisecond

// webhookPayload is the battlecard plus the time it entered delivery.
// The receiving automation scenario turns the JSON into the PDF the
// lead eventually gets.
type webhookPayload struct {
	*models.Battlecard
	ProcessedAt time.Time `json:"processedAt"`
}

// WebhookSink posts battlecards to the external automation webhook.
type WebhookSink struct {
	url        string
	maxRetries int
	client     *http.Client
	logger     logger.Logger
	now        func() time.Time
}

func NewWebhookSink(cfg config.WebhookConfig, log logger.Logger) *WebhookSink {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &WebhookSink{
		url:        cfg.URL,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
		logger:     log,
		now:        time.Now,
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, card *models.Battlecard) error {
	if s.url == "" {
		s.logger.Warn("webhook URL not configured, skipping delivery", map[string]interface{}{
			"leadId": card.LeadID,
		})
		return nil
	}

	body, err := json.Marshal(webhookPayload{
		Battlecard:  card,
		ProcessedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", ErrWebhookDelivery, err)
	}

	var lastErr error
	backoff := webhookInitialBackoff

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrWebhookDelivery, ctx.Err())
			}
			backoff *= 2
		}

		lastErr = s.post(ctx, body)
		if lastErr == nil {
			return nil
		}
		s.logger.Warn("webhook attempt failed", map[string]interface{}{
			"leadId":  card.LeadID,
			"attempt": attempt,
			"error":   lastErr.Error(),
		})
	}

	return fmt.Errorf("%w: %v", ErrWebhookDelivery, lastErr)
}

func (s *WebhookSink) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
