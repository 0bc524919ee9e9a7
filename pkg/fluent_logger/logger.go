package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config параметры подключения к Fluent Bit
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // обычно 24224
	TagPrefix string // общий префикс тегов сервиса
	Timeout   time.Duration
}

// NewClient создает клиент Fluent Bit.
// Соединение проверяется только при первой отправке записи.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}

	fc := fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		// не блокируем обработку запросов, если коллектор недоступен
		Async: true,
	}
	if cfg.Timeout > 0 {
		fc.Timeout = cfg.Timeout
	}

	client, err := fluent.New(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent logger: %w", err)
	}
	return client, nil
}
