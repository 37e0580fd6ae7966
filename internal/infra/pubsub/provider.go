package pubsub

import (
	"context"
	"log/slog"
	"strings"

	"loginflow/config"
	"loginflow/internal/domain/constants"
	"loginflow/internal/domain/entity"
	"loginflow/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops account events when no broker is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishAccountEvent(_ context.Context, event *entity.AccountEvent) error {
	p.logger.Debug("Account event dropped, no publisher configured",
		slog.String("event_id", event.ID),
		slog.String("event_type", string(event.Type)),
		slog.String("user_id", event.UserID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// filteredPublisher forwards only the account event types it was configured with.
type filteredPublisher struct {
	service.EventPublisher
	allowed map[entity.AccountEventType]struct{}
	logger  *slog.Logger
}

func (p *filteredPublisher) PublishAccountEvent(ctx context.Context, event *entity.AccountEvent) error {
	if _, ok := p.allowed[event.Type]; !ok {
		p.logger.Debug("Account event type not routed, skipping",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
		)

		return nil
	}

	return p.EventPublisher.PublishAccountEvent(ctx, event)
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher selects the account event publisher named by pubsub.provider.
// An empty provider yields a publisher that drops every event.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || strings.TrimSpace(cfg.Provider) == "" {
		logger.Info("PubSub not configured, account events will be dropped")

		return &noopPublisher{logger: logger}, nil
	}

	allowed, err := parseEventTypes(cfg.EventTypes)
	if err != nil {
		return nil, err
	}

	ctx := params.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	publisher, err := openPublisher(ctx, provider, cfg, logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing account event publisher", slog.String("provider", provider))

			return errors.Wrapf(publisher.Close(), "close %s publisher", provider)
		},
	})

	if allowed == nil {
		return publisher, nil
	}

	return &filteredPublisher{EventPublisher: publisher, allowed: allowed, logger: logger}, nil
}

func openPublisher(ctx context.Context, provider string, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	switch provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}
		logger.Info("Publishing account events over local HTTP push",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
		logger.Info("Publishing account events to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// parseEventTypes returns nil when every event type should be published.
func parseEventTypes(names []string) (map[entity.AccountEventType]struct{}, error) {
	if len(names) == 0 {
		return nil, nil
	}

	allowed := make(map[entity.AccountEventType]struct{}, len(names))
	for _, name := range names {
		eventType, ok := entity.ParseAccountEventType(strings.TrimSpace(name))
		if !ok {
			return nil, errors.Errorf("unknown account event type in pubsub.eventTypes: %q", name)
		}
		allowed[eventType] = struct{}{}
	}

	return allowed, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
