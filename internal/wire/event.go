package wire

import (
	"time"

	"realty-backoffice/internal/core/domain"
)

// EventDTO - событие изменения списка: тело сообщения в RabbitMQ и данные SSE
type EventDTO struct {
	EventType  string    `json:"eventType"`
	Entity     string    `json:"entity"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId,omitempty"`
	TraceID    string    `json:"traceId,omitempty"`
}

func NewEventDTO(e domain.ListingEvent) EventDTO {
	return EventDTO{
		EventType:  string(e.Type),
		Entity:     string(e.Entity),
		ID:         e.ID,
		OccurredAt: e.OccurredAt.UTC(),
		ActorID:    e.ActorID,
		TraceID:    e.TraceID,
	}
}

func (d EventDTO) Event() domain.ListingEvent {
	return domain.ListingEvent{
		Type:       domain.EventType(d.EventType),
		Entity:     domain.EntityKind(d.Entity),
		ID:         d.ID,
		OccurredAt: d.OccurredAt,
		ActorID:    d.ActorID,
		TraceID:    d.TraceID,
	}
}
