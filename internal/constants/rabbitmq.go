package constants

// Обменник событий изменения списков
const (
	ListingEventsExchangeType = "topic"
	ListingEventsConsumerTag  = "listing-events-sse"
)

// Ключи привязки очереди уведомлений
var ListingEventsBindings = []string{"offer.*", "demand.*"}

// Тип и версия события в заголовках сообщения
const (
	ListingChangedEventType    = "ListingChangedEvent"
	ListingChangedEventVersion = "1.0.0"

	HeaderEventType    = "event_type"
	HeaderEventVersion = "event_version"
	HeaderAMQPTraceID  = "trace_id"
)
