package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики сервиса
type Handlers struct {
	Auth      *AuthHandlers
	Offers    *OfferHandlers
	Demands   *DemandHandlers
	Images    *ImageHandlers
	Chat      *ChatHandlers
	Events    *EventsHandler
	Dashboard *DashboardHandler
	AuthMW    *AuthMiddleware
}

// RouterConfig - параметры, от которых зависит набор маршрутов
type RouterConfig struct {
	AllowedOrigins []string
	UploadsDir     string
	// HealthCheck проверяет зависимости для GET /health, может быть nil
	HealthCheck func(ctx context.Context) error
}

// NewRouter собирает маршруты API
func NewRouter(cfg RouterConfig, h Handlers, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.HeaderTraceID},
		ExposedHeaders:   []string{constants.HeaderTraceID, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix(constants.UploadsRoute+"/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Handle(constants.UploadsRoute+"/*", fs)
	}

	r.Route(constants.APIPrefix, func(r chi.Router) {
		r.Get("/health", healthHandler(cfg.HealthCheck))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Group(func(r chi.Router) {
				r.Use(h.AuthMW.Authenticate)
				r.Post("/logout", h.Auth.Logout)
				r.Get("/profile", h.Auth.Profile)
			})
		})

		r.Get("/chat/health", h.Chat.Health)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMW.Authenticate)

			r.Route("/offres", func(r chi.Router) {
				r.Get("/", h.Offers.Filtered)
				r.Get("/all", h.Offers.All)
				r.Get("/paginated", h.Offers.Paginated)
				r.Get("/filters", h.Offers.Filters)
				r.Get("/export", h.Offers.Export)
				r.Post("/", h.Offers.Create)
				r.Post("/upload-image", h.Offers.UploadImage)
				r.Get("/{id:[0-9]+}", h.Offers.Get)
				r.Put("/{id:[0-9]+}", h.Offers.Update)
				r.Delete("/{id:[0-9]+}", h.Offers.Delete)
				r.Patch("/{id:[0-9]+}/status", h.Offers.ChangeStatus)
				r.Post("/{id:[0-9]+}/photos", h.Offers.AddPhotos)
			})

			r.Route("/demandes", func(r chi.Router) {
				r.Get("/", h.Demands.Filtered)
				r.Get("/all", h.Demands.All)
				r.Get("/paginated", h.Demands.Paginated)
				r.Post("/", h.Demands.Create)
				r.Get("/{id:[0-9]+}", h.Demands.Get)
				r.Put("/{id:[0-9]+}", h.Demands.Update)
				r.Delete("/{id:[0-9]+}", h.Demands.Delete)
			})

			r.Route("/images", func(r chi.Router) {
				r.Post("/upload", h.Images.Upload)
				r.Delete("/delete", h.Images.Delete)
				r.Get("/exists", h.Images.Exists)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/send", h.Chat.Send)
				r.Post("/stream", h.Chat.Stream)
				r.Post("/clear-memory", h.Chat.ClearMemory)
			})

			r.Get("/events", h.Events.Subscribe)

			r.With(h.AuthMW.RequireRole(domain.RoleAdmin)).
				Get("/dashboard/statistiques", h.Dashboard.Statistics)
		})
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN", "error": err.Error()})
				return
			}
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	}
}

// Server - REST API сервер
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string, handler http.Handler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + listenPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server", nil)
	return s.httpServer.Shutdown(ctx)
}
