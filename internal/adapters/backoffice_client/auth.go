package backoffice_client

import (
	"context"
	"net/http"
	"sync"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/wire"
)

// AuthContext - вход и текущий пользователь клиента. Роль приходит только от сервера.
type AuthContext struct {
	c      *Client
	tokens TokenStore

	mu   sync.RWMutex
	user *domain.User
}

func NewAuthContext(c *Client) *AuthContext {
	return &AuthContext{c: c, tokens: c.tokens}
}

func (a *AuthContext) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var res wire.AuthResponseDTO
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", wire.LoginDTO{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	a.tokens.SetToken(res.Token)

	user := res.User.User()
	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()
	return &user, nil
}

// Logout закрывает сессию на сервере. Локальное состояние очищается в любом случае.
func (a *AuthContext) Logout(ctx context.Context) error {
	defer a.forget()
	if a.tokens.Token() == "" {
		return nil
	}
	err := a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if IsUnauthorized(err) {
		return nil
	}
	return err
}

func (a *AuthContext) forget() {
	a.tokens.Clear()
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
}

// CurrentUser возвращает пользователя после входа, при необходимости запрашивая профиль
func (a *AuthContext) CurrentUser(ctx context.Context) (*domain.User, error) {
	a.mu.RLock()
	user := a.user
	a.mu.RUnlock()
	if user != nil {
		return user, nil
	}
	if a.tokens.Token() == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "not logged in"}
	}

	var dto wire.UserDTO
	if err := a.c.do(ctx, http.MethodGet, "/auth/profile", nil, &dto); err != nil {
		if IsUnauthorized(err) {
			a.forget()
		}
		return nil, err
	}
	u := dto.User()
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
	return &u, nil
}

func (a *AuthContext) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil && a.user.Role == domain.RoleAdmin
}
