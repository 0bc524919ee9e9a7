package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type LogoutUserUseCase struct {
	sessions port.SessionStorePort
}

func NewLogoutUserUseCase(sessions port.SessionStorePort) *LogoutUserUseCase {
	return &LogoutUserUseCase{sessions: sessions}
}

// Execute удаляет сессию, после этого токен больше не принимается
func (uc *LogoutUserUseCase) Execute(ctx context.Context, principal domain.Principal) error {
	if err := uc.sessions.Delete(ctx, principal.SessionID); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete session", err, port.Fields{
			"use_case": "LogoutUser",
			"user_id":  principal.UserID.String(),
		})
		return err
	}
	return nil
}
