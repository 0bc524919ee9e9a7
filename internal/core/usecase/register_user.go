package usecase

import (
	"context"
	"fmt"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type RegisterUserUseCase struct {
	userRepo    port.UserRepositoryPort
	adminEmails map[string]struct{}
}

// NewRegisterUserUseCase: пользователи из adminEmails получают роль ADMIN, остальные - AGENT
func NewRegisterUserUseCase(userRepo port.UserRepositoryPort, adminEmails []string) *RegisterUserUseCase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[domain.NormalizeEmail(e)] = struct{}{}
	}
	return &RegisterUserUseCase{userRepo: userRepo, adminEmails: admins}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	email := domain.NormalizeEmail(reg.Email)
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to register user", nil)

	role := domain.RoleAgent
	if _, ok := uc.adminEmails[email]; ok {
		role = domain.RoleAdmin
	}

	user, err := domain.NewUser(reg, role)
	if err != nil {
		ucLogger.Debug("Registration rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		ucLogger.Error("Repository failed to check email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	if err := uc.userRepo.Save(ctx, user); err != nil {
		ucLogger.Error("Repository failed to save user", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user registered", port.Fields{"user_id": user.ID.String(), "role": string(user.Role)})
	return user, nil
}
