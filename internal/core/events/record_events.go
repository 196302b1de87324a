package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChanged builds the event published after a successful mutation,
// typed "<entity>.<action>", e.g. "income.created".
func RecordChanged(entity, action string, id int64, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["entity"] = entity
	data["action"] = action
	data["record_id"] = id

	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      entity + "." + action,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Notify publishes on p when one is configured. Publish failures are logged
// and never fail the mutation that triggered them.
func Notify(ctx context.Context, p Publisher, logger *slog.Logger, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("failed to publish record event", "event_type", event.EventType(), "error", err)
	}
}

// AuditLogger records every record mutation as one structured log line.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
		}
		if data, ok := event.Payload().(map[string]interface{}); ok {
			attrs = append(attrs, "record_id", data["record_id"], "entity", data["entity"])
		}
		logger.InfoContext(ctx, "record changed", attrs...)
		return nil
	}
}
