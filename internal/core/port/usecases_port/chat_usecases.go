package usecases_port

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

type SendChatMessageUseCase interface {
	Execute(ctx context.Context, userID, message string) (*domain.ChatReply, error)
}

type StreamChatMessageUseCase interface {
	Execute(ctx context.Context, userID, message string, onChunk func(chunk string) error) error
}

type ClearChatMemoryUseCase interface {
	Execute(ctx context.Context, userID string) error
}

type ChatHealthUseCase interface {
	Execute(ctx context.Context) domain.ChatHealth
}
