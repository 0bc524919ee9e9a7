package contextkeys

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID помещает trace_id в контекст
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает trace_id или пустую строку
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// RequestInfo заполняется глубже по цепочке обработчиков, а читается
// после ответа тем, кто положил его в контекст.
type RequestInfo struct {
	UserID string
	Role   domain.Role
}

type requestInfoKeyType struct{}

var requestInfoKey = requestInfoKeyType{}

func ContextWithRequestInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// NotePrincipal записывает пользователя в RequestInfo запроса, если оно есть
func NotePrincipal(ctx context.Context, p domain.Principal) {
	if info, ok := ctx.Value(requestInfoKey).(*RequestInfo); ok && info != nil {
		info.UserID = p.UserID.String()
		info.Role = p.Role
	}
}
