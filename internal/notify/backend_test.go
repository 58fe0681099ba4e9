package notify

import (
	"context"
	"io"
	"medreminder/internal/models"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookBackend_PostsJSON(t *testing.T) {
	var got webhookPayload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	wb := NewWebhookBackend(srv.URL, srv.Client())
	wb.now = func() time.Time { return now }

	err := wb.Deliver(context.Background(), models.Notification{
		Title: "Medication Reminder", Body: "Time to take A (1)", Tag: "med-reminder-a", DismissAfter: 30 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Medication Reminder", got.Title)
	assert.Equal(t, "med-reminder-a", got.Tag)
	assert.Equal(t, now.Add(30*time.Second), got.ExpiresAt)
}

func TestWebhookBackend_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookBackend(srv.URL, srv.Client()).Deliver(context.Background(), models.Notification{})
	assert.ErrorContains(t, err, "502")
}

func TestLogBackend_Logs(t *testing.T) {
	logger := &testutil.MockLogger{}
	require.NoError(t, NewLogBackend(logger).Deliver(context.Background(), models.Notification{Title: "t", Body: "b"}))
	assert.Equal(t, 1, logger.Count("info"))
}

func TestNewBackend(t *testing.T) {
	logger := &testutil.MockLogger{}

	b, err := NewBackend(&structures.Config{Notifier: structures.NotifierConfig{Backend: "log"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogBackend{}, b)

	b, err = NewBackend(&structures.Config{Notifier: structures.NotifierConfig{Backend: "webhook", WebhookURL: "http://localhost"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &WebhookBackend{}, b)

	_, err = NewBackend(&structures.Config{Notifier: structures.NotifierConfig{Backend: "pager"}}, logger)
	assert.Error(t, err)
}

func TestNewPlayer(t *testing.T) {
	assert.IsType(t, noopPlayer{}, NewPlayer(&structures.Config{}))

	p := NewPlayer(&structures.Config{Notifier: structures.NotifierConfig{Sound: structures.SoundConfig{Command: "/nonexistent/player", File: "x.mp3"}}})
	assert.Error(t, p.Play(context.Background()))
}
