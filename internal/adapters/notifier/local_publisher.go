package notifier

import (
	"context"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

// LocalPublisher отдает события прямо нотификатору этого процесса.
// Используется, когда брокер сообщений выключен.
type LocalPublisher struct {
	notifier port.NotifierPort
}

func NewLocalPublisher(n port.NotifierPort) *LocalPublisher {
	return &LocalPublisher{notifier: n}
}

func (p *LocalPublisher) Publish(ctx context.Context, event domain.ListingEvent) error {
	p.notifier.Notify(ctx, event)
	return nil
}
