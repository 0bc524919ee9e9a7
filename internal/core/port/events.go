package port

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

// ListingEventPublisherPort сообщает об изменениях в списках
type ListingEventPublisherPort interface {
	Publish(ctx context.Context, event domain.ListingEvent) error
}

// NotifierPort рассылает события открытым SSE-подключениям
type NotifierPort interface {
	Notify(ctx context.Context, event domain.ListingEvent)
}

// EventListenerPort - входящий адаптер, который слушает брокер до отмены контекста
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
