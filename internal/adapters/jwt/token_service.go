package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "realty-backoffice"

// TokenService - реализация TokenServicePort для JWT
type TokenService struct {
	signingKey []byte
	now        func() time.Time
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey), now: time.Now}, nil
}

// jwtCustomClaims: ID сессии лежит в стандартном поле jti
type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken создает новый JWT токен, привязанный к сессии
func (s *TokenService) GenerateToken(ctx context.Context, principal domain.Principal, ttl time.Duration) (string, time.Time, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "GenerateToken",
		"user_id":   principal.UserID.String(),
	})

	now := s.now()
	expiresAt := now.Add(ttl).UTC().Truncate(time.Second)
	claims := &jwtCustomClaims{
		UserID: principal.UserID,
		Email:  principal.Email,
		Role:   string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        principal.SessionID,
			Subject:   principal.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	serviceLogger.Debug("Token generated successfully.", port.Fields{"ttl": ttl.String()})
	return signedToken, expiresAt, nil
}

// ValidateToken проверяет подпись и срок действия
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Principal, error) {
	serviceLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Debug("Token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Principal{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      domain.Role(claims.Role),
		SessionID: claims.ID,
	}, nil
}
