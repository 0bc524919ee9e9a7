package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"

	"realty-backoffice/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ack/Nack пакет делает сам по возвращенной ошибке.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// ConsumerConfig настройки потребителя
type ConsumerConfig struct {
	// Очередь. Пустое имя + DeclareQueue - имя сгенерирует сервер.
	QueueName       string
	DeclareQueue    bool
	DurableQueue    bool
	ExclusiveQueue  bool
	AutoDeleteQueue bool
	QueueArgs       amqp.Table

	// Привязка к обменнику (если ExchangeName пустой - без привязки)
	ExchangeName    string
	DeclareExchange bool
	ExchangeType    string
	DurableExchange bool
	RoutingKeys     []string

	PrefetchCount int
	ConsumerTag   string

	// Вернуть сообщение в очередь после первой ошибки обработчика
	RequeueOnError bool

	Logger rabbitmq_common.Logger
}

func (c *ConsumerConfig) validate() error {
	if !c.DeclareQueue && c.QueueName == "" {
		return fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}
	if c.DeclareExchange && c.ExchangeType == "" {
		return fmt.Errorf("consumer: exchange type is required to declare exchange '%s'", c.ExchangeName)
	}
	return nil
}

// Consumer читает очередь и раздает сообщения обработчику, каждое в своей горутине
type Consumer struct {
	cfg        ConsumerConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	handler    MessageHandler
	wg         sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// NewConsumer открывает канал и настраивает очередь, обменник и привязки
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel: %w", err)
	}

	c := &Consumer{
		cfg:        cfg,
		connection: conn,
		channel:    ch,
		handler:    handler,
		Logger:     logger,
	}
	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if c.cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("consumer: failed to set QoS: %w", err)
		}
	}

	c.queueName = c.cfg.QueueName
	if c.cfg.DeclareQueue {
		q, err := c.channel.QueueDeclare(
			c.cfg.QueueName,
			c.cfg.DurableQueue,
			c.cfg.AutoDeleteQueue,
			c.cfg.ExclusiveQueue,
			false, // no-wait
			c.cfg.QueueArgs,
		)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare queue '%s': %w", c.cfg.QueueName, err)
		}
		c.queueName = q.Name
		c.Logger.Debug("Queue declared", "queue", c.queueName)
	}

	if c.cfg.ExchangeName == "" {
		return nil
	}

	if c.cfg.DeclareExchange {
		err := c.channel.ExchangeDeclare(c.cfg.ExchangeName, c.cfg.ExchangeType, c.cfg.DurableExchange, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare exchange '%s': %w", c.cfg.ExchangeName, err)
		}
	}

	keys := c.cfg.RoutingKeys
	if len(keys) == 0 {
		keys = []string{""}
	}
	for _, key := range keys {
		if err := c.channel.QueueBind(c.queueName, key, c.cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("consumer: failed to bind queue '%s' to '%s' with key '%s': %w", c.queueName, c.cfg.ExchangeName, key, err)
		}
		c.Logger.Debug("Queue bound", "queue", c.queueName, "exchange", c.cfg.ExchangeName, "routing_key", key)
	}
	return nil
}

// StartConsuming блокируется до отмены ctx или закрытия соединения
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return fmt.Errorf("consumer: not connected")
	}

	msgs, err := c.channel.Consume(c.queueName, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer: failed to consume from '%s': %w", c.queueName, err)
	}

	notifyClose := c.connection.NotifyClose(make(chan *amqp.Error, 1))
	c.Logger.Info("Waiting for messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Context cancelled, consumer stops", "queue", c.queueName)
			return nil

		case amqpErr := <-notifyClose:
			if amqpErr == nil {
				return nil
			}
			c.Logger.Error(amqpErr, "Connection closed under consumer", "queue", c.queueName)
			return amqpErr

		case d, ok := <-msgs:
			if !ok {
				c.Logger.Info("Deliveries channel closed", "queue", c.queueName)
				return nil
			}
			c.wg.Add(1)
			go c.process(ctx, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	defer c.wg.Done()

	err := c.handler(ctx, d)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	// повторяем только один раз: второе падение на том же сообщении - выбрасываем
	requeue := c.cfg.RequeueOnError && !d.Redelivered
	c.Logger.Error(err, "Handler failed",
		"queue", c.queueName,
		"delivery_tag", d.DeliveryTag,
		"requeue", requeue,
	)
	_ = d.Nack(false, requeue)
}

// Close дожидается обработчиков и закрывает канал
func (c *Consumer) Close() error {
	c.wg.Wait()
	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil {
		c.Logger.Error(err, "Error closing consumer channel")
		return err
	}
	c.Logger.Info("Consumer closed", "queue", c.queueName)
	return nil
}
