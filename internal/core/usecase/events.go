package usecase

import (
	"context"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

// publishEvent сообщает об изменении записи. Запись к этому моменту уже сохранена,
// поэтому ошибка публикации только логируется.
func publishEvent(ctx context.Context, publisher port.ListingEventPublisherPort, eventType domain.EventType, entity domain.EntityKind, id int64) {
	if publisher == nil {
		return
	}
	event := domain.ListingEvent{
		Type:       eventType,
		Entity:     entity,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		TraceID:    contextkeys.TraceIDFromContext(ctx),
	}
	if principal, ok := contextkeys.PrincipalFromContext(ctx); ok {
		event.ActorID = principal.UserID.String()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to publish listing event", err, port.Fields{
			"event_type": string(eventType),
			"entity":     string(entity),
			"entity_id":  id,
		})
	}
}
