package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/contracts"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/wire"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpPublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type amqpPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ListingEventsPublisherAdapter публикует ListingChangedEvent в обменник событий
type ListingEventsPublisherAdapter struct {
	producer amqpPublisher
	timeout  time.Duration
}

func NewListingEventsPublisherAdapter(producer amqpPublisher) (*ListingEventsPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &ListingEventsPublisherAdapter{producer: producer, timeout: 10 * time.Second}, nil
}

func (a *ListingEventsPublisherAdapter) Publish(ctx context.Context, event domain.ListingEvent) error {
	routingKey := event.RoutingKey()
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ListingEventsPublisherAdapter",
		"routing_key": routingKey,
		"record_id":   event.ID,
	})

	body, err := json.Marshal(wire.NewEventDTO(event))
	if err != nil {
		return fmt.Errorf("failed to marshal listing event: %w", err)
	}
	// контракт проверяется до отправки, чтобы не засорять очередь
	if err := contracts.ValidateEvent(constants.ListingChangedEventType, constants.ListingChangedEventVersion, body); err != nil {
		adapterLogger.Error("Listing event violates its contract", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			constants.HeaderEventType:    constants.ListingChangedEventType,
			constants.HeaderEventVersion: constants.ListingChangedEventVersion,
		},
	}
	if traceID := event.TraceID; traceID != "" {
		msg.Headers[constants.HeaderAMQPTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, nil)
		return err
	}

	adapterLogger.Debug("Listing event published", nil)
	return nil
}
