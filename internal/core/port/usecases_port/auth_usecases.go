package usecases_port

import (
	"context"
	"time"

	"realty-backoffice/internal/core/domain"
)

type RegisterUserUseCase interface {
	Execute(ctx context.Context, reg domain.Registration) (*domain.User, error)
}

// LoginResult - выданный токен и пользователь
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type LoginUserUseCase interface {
	Execute(ctx context.Context, email, password string) (*LoginResult, error)
}

type LogoutUserUseCase interface {
	Execute(ctx context.Context, principal domain.Principal) error
}

// ValidateTokenUseCase проверяет токен и живую сессию
type ValidateTokenUseCase interface {
	Execute(ctx context.Context, token string) (*domain.Principal, error)
}

type GetProfileUseCase interface {
	Execute(ctx context.Context, principal domain.Principal) (*domain.User, error)
}
