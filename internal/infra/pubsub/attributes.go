package pubsub

import (
	"context"
	"encoding/json"

	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// accountEventSubscription is the subscription name used in locally pushed envelopes.
const accountEventSubscription = "projects/local/subscriptions/account-events-sub"

// encodeAccountEvent returns the JSON payload and the attributes used for filtering and tracing.
func encodeAccountEvent(ctx context.Context, event *entity.AccountEvent) ([]byte, map[string]string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_id":   event.ID,
		"event_type": string(event.Type),
		"user_id":    event.UserID,
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		attributes["request_id"] = requestID
	}

	return data, attributes, nil
}
