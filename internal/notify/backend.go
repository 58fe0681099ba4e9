package notify

import (
	"bytes"
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"medreminder/internal/models"
	"medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"medreminder/internal/structures"
	"net/http"
	"time"
)

func NewBackend(conf *structures.Config, logger providers.Logger) (interfaces.BackendInterface, error) {
	switch conf.Notifier.Backend {
	case "", "log":
		return NewLogBackend(logger), nil
	case "webhook":
		return NewWebhookBackend(conf.Notifier.WebhookURL, &http.Client{Timeout: conf.Notifier.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown notifier backend %q", conf.Notifier.Backend)
	}
}

// LogBackend writes notifications to the notify log.
type LogBackend struct {
	logger providers.Logger
}

func NewLogBackend(logger providers.Logger) *LogBackend {
	return &LogBackend{logger: logger}
}

func (l *LogBackend) Deliver(_ context.Context, n models.Notification) error {
	l.logger.Infof(providers.TypeNotify, "%s: %s [%s]", n.Title, n.Body, n.Tag)
	return nil
}

type webhookPayload struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tag       string    `json:"tag"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// WebhookBackend POSTs notifications as JSON to a URL.
type WebhookBackend struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewWebhookBackend(url string, client *http.Client) *WebhookBackend {
	return &WebhookBackend{url: url, client: client, now: time.Now}
}

func (w *WebhookBackend) Deliver(ctx context.Context, n models.Notification) error {
	payload := webhookPayload{Title: n.Title, Body: n.Body, Tag: n.Tag}
	if n.DismissAfter > 0 {
		payload.ExpiresAt = w.now().Add(n.DismissAfter).UTC()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
