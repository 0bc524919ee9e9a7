package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/wire"
)

// ClientChannel - канал, через который события уходят одному SSE-подключению
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event domain.ListingEvent
}

// SSENotifier - реализация NotifierPort. События изменения списков
// получают все открытые подключения, независимо от пользователя.
type SSENotifier struct {
	clients map[ClientChannel]string // канал -> ID пользователя
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}
	stopOnce  sync.Once

	logger port.LoggerPort
}

// NewSSENotifier создает нотификатор и запускает диспетчер
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[ClientChannel]string),
		eventChan: make(chan eventWithContext, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started", nil)
	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped", nil)
			return
		case pkg := <-n.eventChan:
			n.broadcast(pkg.ctx, pkg.event)
		}
	}
}

func (n *SSENotifier) broadcast(ctx context.Context, event domain.ListingEvent) {
	eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SSENotifier.dispatcher",
		"routing_key": event.RoutingKey(),
		"record_id":   event.ID,
	})

	message, err := FormatEvent(event)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.clients) == 0 {
		eventLogger.Debug("No active clients, event dropped", nil)
		return
	}
	for ch, userID := range n.clients {
		// медленный клиент не должен задерживать остальных
		select {
		case ch <- message:
		default:
			eventLogger.Warn("Client channel is full, skipping", port.Fields{"user_id": userID})
		}
	}
}

// FormatEvent - кадр SSE: "event: offer.created\ndata: {...}\n\n"
func FormatEvent(event domain.ListingEvent) ([]byte, error) {
	body, err := json.Marshal(wire.NewEventDTO(event))
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.RoutingKey(), body)), nil
}

// Notify ставит событие в очередь рассылки. После Stop события отбрасываются.
func (n *SSENotifier) Notify(ctx context.Context, event domain.ListingEvent) {
	select {
	case <-n.done:
		return
	default:
	}

	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	case <-n.done:
	default:
		contextkeys.LoggerFromContext(ctx).Warn("Notifier queue is full, event dropped", port.Fields{
			"component":   "SSENotifier",
			"routing_key": event.RoutingKey(),
		})
	}
}

// AddClient регистрирует новое SSE-подключение
func (n *SSENotifier) AddClient(userID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[ch] = userID

	n.logger.Info("Client connected", port.Fields{
		"user_id":           userID,
		"total_connections": len(n.clients),
	})
	return ch
}

// RemoveClient вызывается хендлером, когда клиент закрывает соединение
func (n *SSENotifier) RemoveClient(ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	userID, found := n.clients[ch]
	if !found {
		return
	}
	delete(n.clients, ch)
	n.logger.Info("Client disconnected", port.Fields{
		"user_id":               userID,
		"remaining_connections": len(n.clients),
	})
}

// Done закрывается при остановке: по нему SSE-хендлеры завершают ответы
func (n *SSENotifier) Done() <-chan struct{} {
	return n.done
}

// Stop останавливает диспетчер
func (n *SSENotifier) Stop() {
	n.stopOnce.Do(func() { close(n.done) })
}
