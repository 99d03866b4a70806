package subscribers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

const maxErrorBodySize = 1024

var errWebhookRejected = errors.New("webhook rejected event")

type webhookPayload struct {
	Name        string                    `json:"name"`
	Kind        common.ItemKind           `json:"kind"`
	Event       common.LifecycleEventType `json:"event"`
	PublishedAt time.Time                 `json:"publishedAt"`
	Record      common.HistoryRecord      `json:"record"`
}

// WebhookSubscriber posts every lifecycle event as JSON to the configured url.
// Server errors and transport failures are retried, 4xx responses are not.
type WebhookSubscriber struct {
	config core.WebhookConfig
	client *http.Client
	logger hclog.Logger
}

var _ core.LifecycleSubscriber = (*WebhookSubscriber)(nil)

func NewWebhookSubscriber(config core.WebhookConfig, logger hclog.Logger) *WebhookSubscriber {
	return &WebhookSubscriber{
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.TimeoutMs) * time.Millisecond,
		},
		logger: logger,
	}
}

func (s *WebhookSubscriber) Name() string {
	return "webhook"
}

func (s *WebhookSubscriber) OnLifecycleEvent(ctx context.Context, event core.LifecycleEvent) error {
	payload, err := json.Marshal(webhookPayload{
		Name:        event.Name,
		Kind:        event.Kind,
		Event:       event.Event,
		PublishedAt: event.PublishedAt,
		Record:      event.Record,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle event. err: %w", err)
	}

	err = common.ExecuteWithRetry(ctx, s.config.NumRetries, time.Duration(s.config.RetryWaitMs)*time.Millisecond,
		func(ctx context.Context) error {
			return s.send(ctx, payload)
		}, func(err error) bool {
			return !errors.Is(err, errWebhookRejected)
		})
	if err != nil {
		return fmt.Errorf("failed to deliver %s for %s. err: %w", event.Name, event.Record.ItemID, err)
	}

	s.logger.Debug("Lifecycle event delivered", "name", event.Name, "itemID", event.Record.ItemID)

	return nil
}

func (s *WebhookSubscriber) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", errWebhookRejected, err)
	}

	req.Header.Set("Content-Type", "application/json")

	for key, value := range s.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("%w: status code %d: %s", errWebhookRejected, resp.StatusCode, string(body))
	}

	return fmt.Errorf("webhook returned status code %d: %s", resp.StatusCode, string(body))
}
