package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
	sessions port.SessionStorePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort, sessions port.SessionStorePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc, sessions: sessions}
}

// Execute проверяет подпись токена и наличие сессии. Роль берется из сессии, а не из токена.
func (uc *ValidateTokenUseCase) Execute(ctx context.Context, token string) (*domain.Principal, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ValidateToken"})

	principal, err := uc.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		ucLogger.Debug("Token rejected", port.Fields{"error": err.Error()})
		return nil, domain.ErrTokenInvalid
	}

	session, err := uc.sessions.Get(ctx, principal.SessionID)
	if err != nil {
		ucLogger.Debug("Session lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if session.UserID != principal.UserID {
		ucLogger.Warn("Session belongs to another user", port.Fields{"user_id": principal.UserID.String()})
		return nil, domain.ErrTokenInvalid
	}

	principal.Role = session.Role
	return principal, nil
}
