package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/contracts"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/wire"
	"realty-backoffice/pkg/rabbitmq/rabbitmq_common"
	"realty-backoffice/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ListingEventsConsumerAdapter читает события изменения списков и передает их нотификатору.
// Каждый экземпляр сервиса получает все события: у него своя очередь.
type ListingEventsConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	notifier port.NotifierPort
	logger   port.LoggerPort
}

func NewListingEventsConsumerAdapter(
	cfg rabbitmq_consumer.ConsumerConfig,
	notifier port.NotifierPort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*ListingEventsConsumerAdapter, error) {
	adapter := newListingEventsHandler(notifier, logger)

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": cfg.ConsumerTag})
	cfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewConsumer(cfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, err
	}
	adapter.consumer = consumer
	return adapter, nil
}

func newListingEventsHandler(notifier port.NotifierPort, logger port.LoggerPort) *ListingEventsConsumerAdapter {
	return &ListingEventsConsumerAdapter{notifier: notifier, logger: logger}
}

func (a *ListingEventsConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	traceID, ok := d.Headers[constants.HeaderAMQPTraceID].(string)
	if !ok || traceID == "" {
		traceID = uuid.NewString()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"component":    "ListingEventsConsumerAdapter",
		"trace_id":     traceID,
		"routing_key":  d.RoutingKey,
		"delivery_tag": d.DeliveryTag,
	})
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	eventType, _ := d.Headers[constants.HeaderEventType].(string)
	eventVersion, _ := d.Headers[constants.HeaderEventVersion].(string)
	if eventType == "" {
		eventType, eventVersion = constants.ListingChangedEventType, constants.ListingChangedEventVersion
	}

	// битые сообщения не переотправляются: повтор их не исправит
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Rejecting message that violates the event contract", err, nil)
		return nil
	}

	var dto wire.EventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Failed to unmarshal listing event", err, nil)
		return nil
	}

	event := dto.Event()
	if event.TraceID == "" {
		event.TraceID = traceID
	}
	a.notifier.Notify(ctx, event)
	msgLogger.Debug("Listing event forwarded to notifier", nil)
	return nil
}

func (a *ListingEventsConsumerAdapter) Start(ctx context.Context) error {
	if a.consumer == nil {
		return fmt.Errorf("consumer is not initialized")
	}
	return a.consumer.StartConsuming(ctx)
}

func (a *ListingEventsConsumerAdapter) Close() error {
	if a.consumer == nil {
		return nil
	}
	return a.consumer.Close()
}
