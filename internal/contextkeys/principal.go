package contextkeys

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

type principalKeyType struct{}

var principalKey = principalKeyType{}

// ContextWithPrincipal помещает аутентифицированного пользователя в контекст
func ContextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext возвращает пользователя, которого положил AuthMiddleware
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}
