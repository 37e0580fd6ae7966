package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/domain/entity"
	"loginflow/internal/domain/service"

	"github.com/google/uuid"
)

// publishBestEffort publishes an account event and only logs a failure.
func publishBestEffort(
	ctx context.Context,
	publisher service.EventPublisher,
	logger *slog.Logger,
	eventType entity.AccountEventType,
	userID, email string,
	occurredAt time.Time,
) {
	if publisher == nil {
		return
	}

	event := &entity.AccountEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		UserID:     userID,
		Email:      email,
		ClientIP:   deliverycontext.GetClientIPFromContext(ctx),
		OccurredAt: occurredAt.UTC(),
	}

	if err := publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("type", string(eventType)),
			slog.String("userID", userID),
			slog.Any("error", err))
	}
}
