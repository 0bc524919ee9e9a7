package domain

import "time"

// EventType - что произошло с записью
type EventType string

const (
	EventCreated       EventType = "created"
	EventUpdated       EventType = "updated"
	EventDeleted       EventType = "deleted"
	EventStatusChanged EventType = "status_changed"
	EventPhotosAdded   EventType = "photos_added"
)

// EntityKind - к какому списку относится запись
type EntityKind string

const (
	EntityOffer  EntityKind = "offer"
	EntityDemand EntityKind = "demand"
)

// ListingEvent - изменение в одном из списков, рассылается открытым экранам
type ListingEvent struct {
	Type       EventType
	Entity     EntityKind
	ID         int64
	OccurredAt time.Time
	ActorID    string
	TraceID    string
}

// RoutingKey - ключ маршрутизации в обменнике событий: "offer.created"
func (e ListingEvent) RoutingKey() string {
	return string(e.Entity) + "." + string(e.Type)
}
