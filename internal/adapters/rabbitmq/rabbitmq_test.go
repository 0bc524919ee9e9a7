package rabbitmq_adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (p *capturePublisher) Publish(_ context.Context, routingKey string, msg amqp.Publishing) error {
	p.routingKey = routingKey
	p.msg = msg
	return p.err
}

type captureNotifier struct {
	events []domain.ListingEvent
}

func (n *captureNotifier) Notify(_ context.Context, e domain.ListingEvent) {
	n.events = append(n.events, e)
}

type captureLogger struct {
	debug []string
	info  []string
}

func (l *captureLogger) Info(msg string, _ port.Fields)           { l.info = append(l.info, msg) }
func (l *captureLogger) Warn(string, port.Fields)                 {}
func (l *captureLogger) Error(string, error, port.Fields)         {}
func (l *captureLogger) Debug(msg string, _ port.Fields)          { l.debug = append(l.debug, msg) }
func (l *captureLogger) WithFields(port.Fields) port.LoggerPort { return l }

var sampleEvent = domain.ListingEvent{
	Type:       domain.EventUpdated,
	Entity:     domain.EntityDemand,
	ID:         5,
	OccurredAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	ActorID:    "user-1",
	TraceID:    "trace-1",
}

func TestListingEventsPublisherAdapter_Publish(t *testing.T) {
	t.Run("Should publish a contract-valid message with headers", func(t *testing.T) {
		producer := &capturePublisher{}
		adapter, err := NewListingEventsPublisherAdapter(producer)
		require.NoError(t, err)

		require.NoError(t, adapter.Publish(context.Background(), sampleEvent))

		assert.Equal(t, "demand.updated", producer.routingKey)
		assert.Equal(t, "application/json", producer.msg.ContentType)
		assert.Equal(t, constants.ListingChangedEventType, producer.msg.Headers[constants.HeaderEventType])
		assert.Equal(t, constants.ListingChangedEventVersion, producer.msg.Headers[constants.HeaderEventVersion])
		assert.Equal(t, "trace-1", producer.msg.Headers[constants.HeaderAMQPTraceID])
		assert.JSONEq(t,
			`{"eventType":"updated","entity":"demand","id":5,"occurredAt":"2025-06-02T09:00:00Z","actorId":"user-1","traceId":"trace-1"}`,
			string(producer.msg.Body))
	})

	t.Run("Should refuse events that violate the contract", func(t *testing.T) {
		producer := &capturePublisher{}
		adapter, _ := NewListingEventsPublisherAdapter(producer)

		bad := sampleEvent
		bad.Type = "archived"
		err := adapter.Publish(context.Background(), bad)

		assert.Error(t, err)
		assert.Empty(t, producer.routingKey)
	})

	t.Run("Should return broker errors", func(t *testing.T) {
		producer := &capturePublisher{err: errors.New("channel closed")}
		adapter, _ := NewListingEventsPublisherAdapter(producer)

		assert.EqualError(t, adapter.Publish(context.Background(), sampleEvent), "channel closed")
	})

	t.Run("Should require a producer", func(t *testing.T) {
		_, err := NewListingEventsPublisherAdapter(nil)
		assert.Error(t, err)
	})
}

func TestListingEventsConsumerAdapter_MessageHandler(t *testing.T) {
	body := []byte(`{"eventType":"created","entity":"offer","id":9,"occurredAt":"2025-06-02T09:00:00Z"}`)

	t.Run("Should forward a valid event with the header trace id", func(t *testing.T) {
		n := &captureNotifier{}
		a := newListingEventsHandler(n, contextkeys.NoopLogger())

		err := a.messageHandler(context.Background(), amqp.Delivery{
			Body: body,
			Headers: amqp.Table{
				constants.HeaderEventType:    constants.ListingChangedEventType,
				constants.HeaderEventVersion: constants.ListingChangedEventVersion,
				constants.HeaderAMQPTraceID:  "abc",
			},
		})

		require.NoError(t, err)
		require.Len(t, n.events, 1)
		assert.Equal(t, domain.EventCreated, n.events[0].Type)
		assert.Equal(t, domain.EntityOffer, n.events[0].Entity)
		assert.Equal(t, int64(9), n.events[0].ID)
		assert.Equal(t, "abc", n.events[0].TraceID)
	})

	t.Run("Should drop invalid messages without requeue", func(t *testing.T) {
		n := &captureNotifier{}
		a := newListingEventsHandler(n, contextkeys.NoopLogger())

		err := a.messageHandler(context.Background(), amqp.Delivery{Body: []byte(`{"entity":"offer"}`)})

		assert.NoError(t, err)
		assert.Empty(t, n.events)
	})
}

func TestPkgLoggerBridge(t *testing.T) {
	t.Run("Should pass key-value pairs as fields and skip odd tails", func(t *testing.T) {
		l := &captureLogger{}
		bridge := NewPkgLoggerBridge(l).(*PkgLoggerBridge)

		fields := bridge.toFields("queue", "q1", 42, "ignored", "tail")
		bridge.Info("Waiting for messages", "queue", "q1")

		assert.Equal(t, port.Fields{"queue": "q1"}, fields)
		assert.Equal(t, []string{"Waiting for messages"}, l.info)
	})
}
