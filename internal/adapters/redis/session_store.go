package redis_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "backoffice:session:"

type storedSession struct {
	UserID    uuid.UUID   `json:"userId"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// SessionStore хранит сессии с TTL до момента истечения
type SessionStore struct {
	client Interface
}

func NewSessionStore(client Interface) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionStore) Create(ctx context.Context, session domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	payload, err := json.Marshal(storedSession{
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Dropping unreadable session", port.Fields{"session_id": id, "error": err.Error()})
		_ = s.client.Del(ctx, s.key(id)).Err()
		return nil, domain.ErrSessionExpired
	}

	return &domain.Session{
		ID:        id,
		UserID:    stored.UserID,
		Email:     stored.Email,
		Role:      stored.Role,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
