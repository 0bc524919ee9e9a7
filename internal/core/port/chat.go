package port

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

// ChatModelPort - языковая модель ассистента
type ChatModelPort interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Stream вызывает onChunk для каждой части ответа по мере генерации
	Stream(ctx context.Context, prompt string, onChunk func(chunk string) error) error
	Health(ctx context.Context) domain.ChatHealth
}

// ChatMemoryPort - история диалога пользователя
type ChatMemoryPort interface {
	Append(ctx context.Context, userID string, turns ...domain.ChatTurn) error
	History(ctx context.Context, userID string) ([]domain.ChatTurn, error)
	Clear(ctx context.Context, userID string) error
}
