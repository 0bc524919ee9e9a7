package rest

import (
	"net/http"
	"strings"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
)

// AuthMiddleware проверяет Bearer-токен и живую сессию
type AuthMiddleware struct {
	validateUC usecases_port.ValidateTokenUseCase
}

func NewAuthMiddleware(validateUC usecases_port.ValidateTokenUseCase) *AuthMiddleware {
	return &AuthMiddleware{validateUC: validateUC}
}

// bearerToken берет токен из заголовка Authorization.
// EventSource в браузере не умеет ставить заголовки, поэтому для GET допускается access_token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context())

		token := bearerToken(r)
		if token == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		principal, err := m.validateUC.Execute(r.Context(), token)
		if err != nil {
			logger.Warn("Token rejected", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		contextkeys.NotePrincipal(r.Context(), *principal)
		ctx := contextkeys.ContextWithPrincipal(r.Context(), *principal)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": principal.UserID.String()}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalOrUnauthorized(w, r)
			if !ok {
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			contextkeys.LoggerFromContext(r.Context()).Warn("Access denied by role", port.Fields{"role": string(principal.Role)})
			WriteJSONError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		})
	}
}
