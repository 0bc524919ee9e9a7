package rest

import (
	"net/http"
	"strings"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// LoggerMiddleware создает контекстный логгер и trace_id для каждого запроса.
// Итоговая строка лога несет маршрут, запись и пользователя, если они известны.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(constants.HeaderTraceID)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(constants.HeaderTraceID, traceID)

			reqLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			info := &contextkeys.RequestInfo{}

			ctx := contextkeys.ContextWithLogger(r.Context(), reqLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)
			ctx = contextkeys.ContextWithRequestInfo(ctx, info)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := port.Fields{
				"http_method":   r.Method,
				"http_path":     r.URL.Path,
				"remote_addr":   r.RemoteAddr,
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(start).Milliseconds(),
			}
			// RouteContext заполняется роутером по ходу next, поэтому читается после него
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					fields["route"] = pattern
					if entity := routeEntity(pattern); entity != "" {
						fields["entity"] = entity
					}
				}
				if id := rctx.URLParam("id"); id != "" {
					fields["entity_id"] = id
				}
			}
			if info.UserID != "" {
				fields["user_id"] = info.UserID
				fields["role"] = string(info.Role)
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.Warn("Request failed", fields)
			default:
				reqLogger.Info("Request finished", fields)
			}
		})
	}
}

// routeEntity - первый сегмент маршрута после префикса API: "offres", "demandes", "auth"
func routeEntity(pattern string) string {
	rest, ok := strings.CutPrefix(pattern, constants.APIPrefix)
	if !ok {
		return ""
	}
	entity, _, _ := strings.Cut(strings.TrimPrefix(rest, "/"), "/")
	return entity
}
