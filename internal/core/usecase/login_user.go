package usecase

import (
	"context"
	"fmt"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type LoginUserUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	sessions       port.SessionStorePort
	accessTokenTTL time.Duration
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, sessions port.SessionStorePort, accessTokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		sessions:       sessions,
		accessTokenTTL: accessTokenTTL,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*usecases_port.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	// неизвестный email и неверный пароль снаружи неразличимы
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(uc.accessTokenTTL).UTC(),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		ucLogger.Error("Failed to create session", err, nil)
		return nil, err
	}

	principal := domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role, SessionID: session.ID}
	token, expiresAt, err := uc.tokenSvc.GenerateToken(ctx, principal, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, err
	}

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return &usecases_port.LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
