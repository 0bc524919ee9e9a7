package port

import (
	"context"
	"time"

	"realty-backoffice/internal/core/domain"
)

// TokenServicePort выпускает и проверяет токены доступа
type TokenServicePort interface {
	GenerateToken(ctx context.Context, principal domain.Principal, ttl time.Duration) (string, time.Time, error)
	// ValidateToken проверяет подпись и срок, сессию не проверяет
	ValidateToken(ctx context.Context, token string) (*domain.Principal, error)
}

// SessionStorePort хранит серверные сессии. Удаленная сессия делает токен недействительным.
type SessionStorePort interface {
	Create(ctx context.Context, session domain.Session) error
	// Get возвращает domain.ErrSessionExpired, если сессии нет
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
