package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionManager держит одно AMQP-соединение на процесс и раздает из него каналы
type ConnectionManager struct {
	cfg        Config
	connection *amqp.Connection
	mu         sync.RWMutex
	stop       chan struct{}
	stopOnce   sync.Once

	Logger Logger
}

// NewManager подключается к брокеру и запускает фоновое переподключение
func NewManager(cfg Config, logger Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNoopLogger()
	}

	m := &ConnectionManager{
		cfg:    cfg,
		stop:   make(chan struct{}),
		Logger: logger,
	}

	if _, err := m.getConnection(); err != nil {
		logger.Error(err, "Initial RabbitMQ connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	go m.watch()

	return m, nil
}

// getConnection возвращает живое соединение, при необходимости устанавливая новое
func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mu.RLock()
	conn := m.connection
	m.mu.RUnlock()
	if conn != nil && !conn.IsClosed() {
		return conn, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// пока ждали блокировку, соединение мог поднять другой вызов
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.Logger.Debug("Dialing RabbitMQ")
	conn, err := amqp.Dial(m.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	m.connection = conn
	m.Logger.Debug("RabbitMQ connection established")
	return conn, nil
}

// GetChannel открывает новый канал на общем соединении
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) watch() {
	ticker := time.NewTicker(m.cfg.reconnectInterval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
		}

		m.mu.RLock()
		alive := m.connection != nil && !m.connection.IsClosed()
		m.mu.RUnlock()
		if alive {
			continue
		}

		m.Logger.Warn("RabbitMQ connection lost, reconnecting")
		if _, err := m.getConnection(); err != nil {
			m.Logger.Error(err, "RabbitMQ reconnect failed")
		}
	}
}

// Close останавливает переподключение и закрывает соединение
func (m *ConnectionManager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connection == nil || m.connection.IsClosed() {
		m.Logger.Debug("RabbitMQ connection already closed")
		return nil
	}
	if err := m.connection.Close(); err != nil {
		m.Logger.Error(err, "Failed to close RabbitMQ connection")
		return err
	}
	m.Logger.Debug("RabbitMQ connection closed")
	return nil
}
