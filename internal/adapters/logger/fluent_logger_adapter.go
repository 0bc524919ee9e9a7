package logger_adapter

import (
	"fmt"
	"log/slog"
	"time"

	"realty-backoffice/internal/core/port"
)

// FluentPoster - часть клиента fluent, которая нужна адаптеру
type FluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentLoggerAdapter отправляет записи в Fluent Bit, тег = уровень
type FluentLoggerAdapter struct {
	client   FluentPoster
	fields   port.Fields
	minLevel slog.Level
	service  string
}

func NewFluentLoggerAdapter(client FluentPoster, service string, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}
	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}
	return &FluentLoggerAdapter{
		client:   client,
		fields:   port.Fields{},
		minLevel: level,
		service:  service,
	}, nil
}

func (a *FluentLoggerAdapter) merge(fields port.Fields) port.Fields {
	merged := make(port.Fields, len(a.fields)+len(fields)+4)
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentLoggerAdapter) post(level slog.Level, msg string, err error, fields port.Fields) {
	if level < a.minLevel {
		return
	}
	record := a.merge(fields)
	for k, v := range record {
		// fluent кодирует записи в msgpack, произвольные типы превращаем в строки
		switch v.(type) {
		case string, bool, int, int32, int64, float32, float64, nil:
		default:
			record[k] = fmt.Sprint(v)
		}
	}
	if err != nil {
		record["error"] = err.Error()
	}
	record["level"] = level.String()
	record["message"] = msg
	record["service"] = a.service
	record["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	_ = a.client.Post(levelTag(level), record)
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, msg, nil, fields)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, msg, nil, fields)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	a.post(slog.LevelError, msg, err, fields)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, msg, nil, fields)
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:   a.client,
		fields:   a.merge(fields),
		minLevel: a.minLevel,
		service:  a.service,
	}
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
