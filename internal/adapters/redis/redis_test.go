package redis_adapter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store a session until it expires", func(t *testing.T) {
		mr, client := newTestClient(t)
		store := NewSessionStore(client)
		session := domain.Session{
			ID:        "s1",
			UserID:    uuid.New(),
			Email:     "karim@agence.ma",
			Role:      domain.RoleAdmin,
			ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		}

		require.NoError(t, store.Create(ctx, session))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, session.UserID, got.UserID)
		assert.Equal(t, domain.RoleAdmin, got.Role)
		assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

		mr.FastForward(2 * time.Hour)
		_, err = store.Get(ctx, "s1")
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("Should forget a deleted session", func(t *testing.T) {
		_, client := newTestClient(t)
		store := NewSessionStore(client)
		require.NoError(t, store.Create(ctx, domain.Session{ID: "s2", ExpiresAt: time.Now().Add(time.Minute)}))

		require.NoError(t, store.Delete(ctx, "s2"))

		_, err := store.Get(ctx, "s2")
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("Should refuse an already expired session", func(t *testing.T) {
		_, client := newTestClient(t)
		err := NewSessionStore(client).Create(ctx, domain.Session{ID: "s3", ExpiresAt: time.Now().Add(-time.Second)})

		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("Should treat a corrupted entry as expired", func(t *testing.T) {
		mr, client := newTestClient(t)
		require.NoError(t, mr.Set(sessionKeyPrefix+"s4", "{not json"))

		_, err := NewSessionStore(client).Get(ctx, "s4")

		assert.ErrorIs(t, err, domain.ErrSessionExpired)
		assert.False(t, mr.Exists(sessionKeyPrefix+"s4"))
	})
}

func TestChatMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep only the most recent turns in order", func(t *testing.T) {
		_, client := newTestClient(t)
		memory := NewChatMemory(client, 2, time.Hour)

		for i := 1; i <= 3; i++ {
			require.NoError(t, memory.Append(ctx, "u1",
				domain.ChatTurn{Role: domain.ChatUser, Content: fmt.Sprintf("q%d", i)},
				domain.ChatTurn{Role: domain.ChatAssistant, Content: fmt.Sprintf("a%d", i)},
			))
		}

		turns, err := memory.History(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, turns, 4)
		assert.Equal(t, "q2", turns[0].Content)
		assert.Equal(t, domain.ChatAssistant, turns[3].Role)
		assert.Equal(t, "a3", turns[3].Content)
	})

	t.Run("Should expire idle history", func(t *testing.T) {
		mr, client := newTestClient(t)
		memory := NewChatMemory(client, 10, time.Minute)
		require.NoError(t, memory.Append(ctx, "u1", domain.ChatTurn{Role: domain.ChatUser, Content: "Bonjour"}))

		mr.FastForward(2 * time.Minute)

		turns, err := memory.History(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, turns)
	})

	t.Run("Should isolate users and clear on demand", func(t *testing.T) {
		_, client := newTestClient(t)
		memory := NewChatMemory(client, 10, 0)
		require.NoError(t, memory.Append(ctx, "u1", domain.ChatTurn{Role: domain.ChatUser, Content: "un"}))
		require.NoError(t, memory.Append(ctx, "u2", domain.ChatTurn{Role: domain.ChatUser, Content: "deux"}))

		require.NoError(t, memory.Clear(ctx, "u1"))

		u1, _ := memory.History(ctx, "u1")
		u2, _ := memory.History(ctx, "u2")
		assert.Empty(t, u1)
		assert.Len(t, u2, 1)
	})
}
