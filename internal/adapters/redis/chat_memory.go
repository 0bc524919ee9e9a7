package redis_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/redis/go-redis/v9"
)

const chatKeyPrefix = "backoffice:chat:"

// ChatMemory хранит последние реплики диалога списком, одна запись - одна реплика в JSON
type ChatMemory struct {
	client   Interface
	maxTurns int
	ttl      time.Duration
}

// NewChatMemory: maxTurns - сколько пар вопрос-ответ помнить, ttl - сколько хранить историю после последнего сообщения
func NewChatMemory(client Interface, maxTurns int, ttl time.Duration) *ChatMemory {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &ChatMemory{client: client, maxTurns: maxTurns, ttl: ttl}
}

func (m *ChatMemory) key(userID string) string {
	return chatKeyPrefix + userID
}

func (m *ChatMemory) Append(ctx context.Context, userID string, turns ...domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal chat turn: %w", err)
		}
		values = append(values, raw)
	}

	key := m.key(userID)
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, int64(-2*m.maxTurns), -1)
		if m.ttl > 0 {
			pipe.Expire(ctx, key, m.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append chat turns: %w", err)
	}
	return nil
}

// History возвращает реплики от старых к новым
func (m *ChatMemory) History(ctx context.Context, userID string) ([]domain.ChatTurn, error) {
	raw, err := m.client.LRange(ctx, m.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(raw))
	for _, r := range raw {
		var t domain.ChatTurn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			contextkeys.LoggerFromContext(ctx).Debug("Skipping unreadable chat turn", port.Fields{"user_id": userID})
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (m *ChatMemory) Clear(ctx context.Context, userID string) error {
	if err := m.client.Del(ctx, m.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
