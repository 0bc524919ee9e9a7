package usecase

import (
	"context"
	"strings"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

// chatSession - общая часть отправки сообщения: история до вызова модели и запись после
type chatSession struct {
	model  port.ChatModelPort
	memory port.ChatMemoryPort
	now    func() time.Time
}

func (s chatSession) prepare(ctx context.Context, userID, message string) (string, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", domain.ErrEmptyMessage
	}

	history, err := s.memory.History(ctx, userID)
	if err != nil {
		// без истории ассистент все равно может ответить
		contextkeys.LoggerFromContext(ctx).Warn("Chat history unavailable", port.Fields{"user_id": userID, "error": err.Error()})
		history = nil
	}
	return message, buildPrompt(history, message), nil
}

func (s chatSession) remember(ctx context.Context, userID, message, reply string, askedAt time.Time) {
	err := s.memory.Append(ctx, userID,
		domain.ChatTurn{Role: domain.ChatUser, Content: message, At: askedAt},
		domain.ChatTurn{Role: domain.ChatAssistant, Content: reply, At: s.now().UTC()},
	)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to store chat turns", port.Fields{"user_id": userID, "error": err.Error()})
	}
}

type SendChatMessageUseCase struct {
	chatSession
}

func NewSendChatMessageUseCase(model port.ChatModelPort, memory port.ChatMemoryPort) *SendChatMessageUseCase {
	return &SendChatMessageUseCase{chatSession{model: model, memory: memory, now: time.Now}}
}

func (uc *SendChatMessageUseCase) Execute(ctx context.Context, userID, message string) (*domain.ChatReply, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SendChatMessage", "user_id": userID})

	askedAt := uc.now().UTC()
	message, prompt, err := uc.prepare(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	reply, err := uc.model.Generate(ctx, prompt)
	if err != nil {
		ucLogger.Error("Chat model failed", err, nil)
		return nil, err
	}
	reply = strings.TrimSpace(reply)

	uc.remember(ctx, userID, message, reply, askedAt)
	ucLogger.Info("Chat reply generated", port.Fields{"reply_length": len(reply)})
	return &domain.ChatReply{Response: reply, Timestamp: uc.now().UTC()}, nil
}

type StreamChatMessageUseCase struct {
	chatSession
}

func NewStreamChatMessageUseCase(model port.ChatModelPort, memory port.ChatMemoryPort) *StreamChatMessageUseCase {
	return &StreamChatMessageUseCase{chatSession{model: model, memory: memory, now: time.Now}}
}

// Execute передает части ответа в onChunk. В историю попадает только полностью полученный ответ.
func (uc *StreamChatMessageUseCase) Execute(ctx context.Context, userID, message string, onChunk func(chunk string) error) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "StreamChatMessage", "user_id": userID})

	askedAt := uc.now().UTC()
	message, prompt, err := uc.prepare(ctx, userID, message)
	if err != nil {
		return err
	}

	var reply strings.Builder
	err = uc.model.Stream(ctx, prompt, func(chunk string) error {
		reply.WriteString(chunk)
		return onChunk(chunk)
	})
	if err != nil {
		ucLogger.Error("Chat stream failed", err, nil)
		return err
	}

	uc.remember(ctx, userID, message, strings.TrimSpace(reply.String()), askedAt)
	return nil
}

type ClearChatMemoryUseCase struct {
	memory port.ChatMemoryPort
}

func NewClearChatMemoryUseCase(memory port.ChatMemoryPort) *ClearChatMemoryUseCase {
	return &ClearChatMemoryUseCase{memory: memory}
}

func (uc *ClearChatMemoryUseCase) Execute(ctx context.Context, userID string) error {
	return uc.memory.Clear(ctx, userID)
}

type ChatHealthUseCase struct {
	model port.ChatModelPort
}

func NewChatHealthUseCase(model port.ChatModelPort) *ChatHealthUseCase {
	return &ChatHealthUseCase{model: model}
}

func (uc *ChatHealthUseCase) Execute(ctx context.Context) domain.ChatHealth {
	return uc.model.Health(ctx)
}
