package usecase

import (
	"context"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type GetProfileUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetProfileUseCase(userRepo port.UserRepositoryPort) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	user, err := uc.userRepo.FindByID(ctx, principal.UserID.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
