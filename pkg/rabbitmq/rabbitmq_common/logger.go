package rabbitmq_common

// Logger - минимальный интерфейс логгера, который нужен пакету.
// Сервисы подключают свой логгер через адаптер-мост.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})        {}
func (noopLogger) Info(string, ...interface{})         {}
func (noopLogger) Warn(string, ...interface{})         {}
func (noopLogger) Error(error, string, ...interface{}) {}

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() Logger {
	return noopLogger{}
}
