package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"loginflow/config"
	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *entity.AccountEvent {
	return &entity.AccountEvent{
		ID:         "evt-1",
		Type:       entity.EventPasswordResetCompleted,
		UserID:     "u1",
		Email:      "user@example.com",
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewEventPublisher_Providers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.PubSubConfig
		wantErr  bool
		wantNoop bool
	}{
		{name: "not configured", cfg: nil, wantNoop: true},
		{name: "empty provider", cfg: &config.PubSubConfig{}, wantNoop: true},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}, wantErr: true},
		{name: "local", cfg: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8085/push"}},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google", TopicID: "t"}, wantErr: true},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: "google", ProjectID: "p"}, wantErr: true},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
		{name: "provider is case insensitive", cfg: &config.PubSubConfig{Provider: " Local ", LocalEndpoint: "http://localhost:8085/push"}},
		{
			name:    "unknown event type",
			cfg:     &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8085/push", EventTypes: []string{"user.deleted"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)

			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Config: &config.Config{PubSub: tt.cfg},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.wantNoop, isNoop)
			if isNoop {
				assert.NoError(t, publisher.PublishAccountEvent(context.Background(), testEvent()))
			}
			assert.NoError(t, publisher.Close())
		})
	}
}

func TestNewEventPublisher_RoutesConfiguredEventTypes(t *testing.T) {
	var delivered atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		delivered.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	lc := fxtest.NewLifecycle(t)
	publisher, err := NewEventPublisher(PublisherParams{
		Lc: lc,
		Config: &config.Config{PubSub: &config.PubSubConfig{
			Provider:      "local",
			LocalEndpoint: server.URL,
			EventTypes:    []string{" password_reset.completed "},
		}},
		Logger: newDiscardLogger(),
	})
	require.NoError(t, err)
	require.IsType(t, &filteredPublisher{}, publisher)

	issued := testEvent()
	issued.Type = entity.EventTemporaryPasswordIssued

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), issued))
	assert.Equal(t, int32(0), delivered.Load())

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), testEvent()))
	assert.Equal(t, int32(1), delivered.Load())

	lc.RequireStart().RequireStop()
}

func TestParseEventTypes(t *testing.T) {
	allowed, err := parseEventTypes(nil)
	require.NoError(t, err)
	assert.Nil(t, allowed)

	allowed, err = parseEventTypes([]string{"temporary_password.issued", "temporary_password.expired"})
	require.NoError(t, err)
	assert.Len(t, allowed, 2)
	assert.Contains(t, allowed, entity.EventTemporaryPasswordExpired)

	_, err = parseEventTypes([]string{"TEMPORARY_PASSWORD.ISSUED"})
	assert.ErrorContains(t, err, "unknown account event type")
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var received PubSubPushMessage
	var requestIDHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDHeader = r.Header.Get(deliverycontext.HeaderXRequestID)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := newLocalHTTPPublisher(server.URL, server.Client(), newDiscardLogger())
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")

	require.NoError(t, publisher.PublishAccountEvent(ctx, testEvent()))

	assert.Equal(t, "req-42", requestIDHeader)
	assert.Equal(t, accountEventSubscription, received.Subscription)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, "password_reset.completed", received.Message.Attributes["event_type"])
	assert.Equal(t, "u1", received.Message.Attributes["user_id"])
	assert.Equal(t, "req-42", received.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event entity.AccountEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, *testEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := newLocalHTTPPublisher(server.URL, server.Client(), newDiscardLogger())

	err := publisher.PublishAccountEvent(context.Background(), testEvent())

	assert.ErrorContains(t, err, "503")
}

func TestEncodeAccountEvent_WithoutRequestID(t *testing.T) {
	_, attributes, err := encodeAccountEvent(context.Background(), testEvent())

	require.NoError(t, err)
	assert.NotContains(t, attributes, "request_id")
	assert.Equal(t, "evt-1", attributes["event_id"])
}
