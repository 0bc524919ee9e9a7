package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"realty-backoffice/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig настройки издателя
type PublisherConfig struct {
	ExchangeName    string // пустая строка - default exchange
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	ExchangeArgs    amqp.Table

	// Если false, обменник должен уже существовать
	DeclareExchange bool

	Logger rabbitmq_common.Logger
}

func (c *PublisherConfig) validate() error {
	if c.DeclareExchange && c.ExchangeName == "" {
		return fmt.Errorf("producer: exchange name is required to declare an exchange")
	}
	if c.DeclareExchange && c.ExchangeType == "" {
		return fmt.Errorf("producer: exchange type is required to declare exchange '%s'", c.ExchangeName)
	}
	return nil
}

// Publisher публикует сообщения в один обменник через собственный канал
type Publisher struct {
	cfg        PublisherConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	mu         sync.Mutex // amqp.Channel не рассчитан на конкурентную публикацию

	Logger rabbitmq_common.Logger
}

// NewPublisher открывает канал на соединении менеджера и, если нужно, объявляет обменник
func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel: %w", err)
	}

	if cfg.DeclareExchange {
		logger.Debug("Declaring exchange", "name", cfg.ExchangeName, "type", cfg.ExchangeType)
		err = ch.ExchangeDeclare(
			cfg.ExchangeName,
			cfg.ExchangeType,
			cfg.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			cfg.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", cfg.ExchangeName, err)
		}
	}

	logger.Debug("Publisher ready", "exchange", cfg.ExchangeName)
	return &Publisher{
		cfg:        cfg,
		connection: conn,
		channel:    ch,
		Logger:     logger,
	}, nil
}

// Publish отправляет сообщение с указанным ключом маршрутизации
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.connection == nil || p.connection.IsClosed() {
		return fmt.Errorf("producer: channel or connection is closed")
	}

	err := p.channel.PublishWithContext(ctx, p.cfg.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("producer: failed to publish to '%s' with key '%s': %w", p.cfg.ExchangeName, routingKey, err)
	}
	return nil
}

// Close закрывает канал издателя. Соединение принадлежит ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing publisher channel")
		return err
	}
	p.Logger.Info("Publisher closed", "exchange", p.cfg.ExchangeName)
	return nil
}
