package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	excel_adapter "realty-backoffice/internal/adapters/excel"
	filestorage_adapter "realty-backoffice/internal/adapters/filestorage"
	token_adapter "realty-backoffice/internal/adapters/jwt"
	logger_adapter "realty-backoffice/internal/adapters/logger"
	"realty-backoffice/internal/adapters/notifier"
	ollama_adapter "realty-backoffice/internal/adapters/ollama"
	postgres_adapter "realty-backoffice/internal/adapters/postgres"
	rabbitmq_adapter "realty-backoffice/internal/adapters/rabbitmq"
	redis_adapter "realty-backoffice/internal/adapters/redis"
	"realty-backoffice/internal/adapters/rest"
	"realty-backoffice/internal/configs"
	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/usecase"
	fluentlogger "realty-backoffice/pkg/fluent_logger"
	"realty-backoffice/pkg/postgres"
	"realty-backoffice/pkg/rabbitmq/rabbitmq_common"
	"realty-backoffice/pkg/rabbitmq/rabbitmq_consumer"
	"realty-backoffice/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// App – структура приложения
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	redis     *redis.Client
	apiServer *rest.Server
	notifier  *notifier.SSENotifier

	rabbitMQManager *rabbitmq_common.ConnectionManager
	eventsPublisher *rabbitmq_producer.Publisher
	eventsListener  port.EventListenerPort

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:     parseLogLevel(appConfig.StdoutLogger.Level),
		AddSource: appConfig.StdoutLogger.AddSource,
		IsJSON:    appConfig.StdoutLogger.JSON,
		UseColor:  true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, appConfig.AppName, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}
	if err := app.init(baseLogger); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

// init поднимает зависимости и собирает сценарии. При ошибке уже открытое закрывает вызывающий.
func (a *App) init(baseLogger port.LoggerPort) error {
	cfg := a.config
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// --- 2. ХРАНИЛИЩА ---
	if cfg.Database.MigrateOnStart {
		if err := postgres_adapter.Migrate(ctx, cfg.Database.URL); err != nil {
			a.logger.Error("Failed to apply database migrations", err, nil)
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		a.logger.Info("Database migrations applied", nil)
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:     cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Debug("Successfully connected to PostgreSQL pool!", nil)

	offerRepo, err := postgres_adapter.NewOfferRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create offer repository: %w", err)
	}
	demandRepo, err := postgres_adapter.NewDemandRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create demand repository: %w", err)
	}
	userRepo, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create user repository: %w", err)
	}
	filterRepo, err := postgres_adapter.NewFilterRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create filter repository: %w", err)
	}
	dashboardRepo, err := postgres_adapter.NewDashboardRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create dashboard repository: %w", err)
	}

	redisClient, err := redis_adapter.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		a.logger.Error("Failed to connect to Redis", err, nil)
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = redisClient
	sessions := redis_adapter.NewSessionStore(redisClient)
	chatMemory := redis_adapter.NewChatMemory(redisClient, cfg.Ollama.MemoryTurns, cfg.Ollama.MemoryTTL)

	images, err := filestorage_adapter.NewImageStorage(cfg.Uploads.Dir, cfg.HTTP.BaseURL, int64(cfg.Uploads.MaxUploadMB)<<20)
	if err != nil {
		return fmt.Errorf("failed to create image storage: %w", err)
	}

	tokenService, err := token_adapter.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}
	chatModel := ollama_adapter.NewClient(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout)
	a.logger.Debug("All persistence and service adapters initialized.", nil)

	// --- 3. СОБЫТИЯ ---
	a.notifier = notifier.NewSSENotifier(baseLogger)
	var publisher port.ListingEventPublisherPort = notifier.NewLocalPublisher(a.notifier)
	if cfg.RabbitMQ.Enabled {
		publisher, err = a.initRabbitMQ(baseLogger)
		if err != nil {
			return err
		}
	}

	// --- 4. СЦЕНАРИИ ---
	offerUseCases := rest.OfferUseCases{
		List:    usecase.NewListRecordsUseCase[domain.Offer](offerRepo, "Offers"),
		All:     usecase.NewFindAllRecordsUseCase[domain.Offer](offerRepo, "Offers"),
		Get:     usecase.NewGetRecordUseCase[domain.Offer](offerRepo),
		Delete:  usecase.NewDeleteRecordUseCase(offerRepo, domain.EntityOffer, publisher),
		Create:  usecase.NewCreateOfferUseCase(offerRepo, publisher),
		Update:  usecase.NewUpdateOfferUseCase(offerRepo, publisher),
		Status:  usecase.NewChangeOfferStatusUseCase(offerRepo, publisher),
		Photos:  usecase.NewAddOfferPhotosUseCase(offerRepo, images, publisher),
		Export:  usecase.NewExportOffersUseCase(offerRepo, excel_adapter.NewOfferExporter()),
		Filters: usecase.NewGetFilterOptionsUseCase(filterRepo),
		Upload:  usecase.NewUploadImageUseCase(images),
	}
	demandUseCases := rest.DemandUseCases{
		List:   usecase.NewListRecordsUseCase[domain.Demand](demandRepo, "Demands"),
		All:    usecase.NewFindAllRecordsUseCase[domain.Demand](demandRepo, "Demands"),
		Get:    usecase.NewGetRecordUseCase[domain.Demand](demandRepo),
		Delete: usecase.NewDeleteRecordUseCase(demandRepo, domain.EntityDemand, publisher),
		Create: usecase.NewCreateDemandUseCase(demandRepo, publisher),
		Update: usecase.NewUpdateDemandUseCase(demandRepo, publisher),
	}
	a.logger.Debug("All use cases initialized.", nil)

	// --- 5. REST API ---
	maxUploadBytes := int64(cfg.Uploads.MaxUploadMB) << 20
	handlers := rest.Handlers{
		Auth: rest.NewAuthHandlers(
			usecase.NewRegisterUserUseCase(userRepo, cfg.Auth.AdminEmails),
			usecase.NewLoginUserUseCase(userRepo, tokenService, sessions, cfg.Auth.TokenTTL),
			usecase.NewLogoutUserUseCase(sessions),
			usecase.NewGetProfileUseCase(userRepo),
		),
		Offers:  rest.NewOfferHandlers(offerUseCases, maxUploadBytes),
		Demands: rest.NewDemandHandlers(demandUseCases),
		Images: rest.NewImageHandlers(
			offerUseCases.Upload,
			usecase.NewDeleteImageUseCase(images),
			usecase.NewImageExistsUseCase(images),
			maxUploadBytes,
		),
		Chat: rest.NewChatHandlers(
			usecase.NewSendChatMessageUseCase(chatModel, chatMemory),
			usecase.NewStreamChatMessageUseCase(chatModel, chatMemory),
			usecase.NewClearChatMemoryUseCase(chatMemory),
			usecase.NewChatHealthUseCase(chatModel),
		),
		Events:    rest.NewEventsHandler(a.notifier),
		Dashboard: rest.NewDashboardHandler(usecase.NewGetDashboardStatsUseCase(dashboardRepo)),
		AuthMW:    rest.NewAuthMiddleware(usecase.NewValidateTokenUseCase(tokenService, sessions)),
	}

	router := rest.NewRouter(rest.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		UploadsDir:     cfg.Uploads.Dir,
		HealthCheck:    a.healthCheck,
	}, handlers, baseLogger)
	a.apiServer = rest.NewServer(cfg.HTTP.Port, router, baseLogger)
	a.logger.Debug("REST API server configured.", nil)
	return nil
}

// initRabbitMQ поднимает издателя событий и слушателя, который передает их SSE-клиентам
func (a *App) initRabbitMQ(baseLogger port.LoggerPort) (port.ListingEventPublisherPort, error) {
	cfg := a.config.RabbitMQ
	rmqLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	manager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: cfg.URL}, rmqLogger)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to create RabbitMQ connection manager: %w", err)
	}
	a.rabbitMQManager = manager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:    cfg.Exchange,
		ExchangeType:    constants.ListingEventsExchangeType,
		DurableExchange: true,
		DeclareExchange: true,
		Logger:          rmqLogger,
	}, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}
	a.eventsPublisher = producer

	publisher, err := rabbitmq_adapter.NewListingEventsPublisherAdapter(producer)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher adapter: %w", err)
	}

	listener, err := rabbitmq_adapter.NewListingEventsConsumerAdapter(rabbitmq_consumer.ConsumerConfig{
		QueueName:       cfg.EventsQueue,
		DeclareQueue:    true,
		DurableQueue:    cfg.EventsQueue != "",
		ExclusiveQueue:  cfg.EventsQueue == "",
		AutoDeleteQueue: cfg.EventsQueue == "",
		ExchangeName:    cfg.Exchange,
		DeclareExchange: true,
		ExchangeType:    constants.ListingEventsExchangeType,
		DurableExchange: true,
		RoutingKeys:     constants.ListingEventsBindings,
		PrefetchCount:   20,
		ConsumerTag:     constants.ListingEventsConsumerTag,
	}, a.notifier, baseLogger, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create events consumer: %w", err)
	}
	a.eventsListener = listener

	a.logger.Debug("RabbitMQ publisher and consumer initialized.", port.Fields{"exchange": cfg.Exchange})
	return publisher, nil
}

func (a *App) healthCheck(ctx context.Context) error {
	if err := a.dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := a.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.close()

	a.logger.Info("Application is starting...", nil)

	g, gCtx := errgroup.WithContext(appCtx)

	g.Go(func() error {
		a.logger.Debug("Starting HTTP server...", port.Fields{"port": a.config.HTTP.Port})
		return a.apiServer.Start()
	})

	if a.eventsListener != nil {
		g.Go(func() error {
			a.logger.Info("Listing events consumer started", nil)
			if err := a.eventsListener.Start(gCtx); err != nil {
				return fmt.Errorf("listing events consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		if appCtx.Err() != nil {
			a.logger.Warn("Received OS signal, shutting down...", nil)
		}

		// открытые SSE-потоки держат Shutdown, поэтому нотификатор закрывается первым
		a.notifier.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
		return nil
	})

	a.logger.Debug("Application running. Waiting for signals or server error...", nil)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped with error", err, nil)
		return err
	}
	return nil
}

// close освобождает ресурсы в порядке, обратном созданию
func (a *App) close() {
	a.logger.Debug("Shutdown sequence initiated...", nil)

	if a.eventsListener != nil {
		if err := a.eventsListener.Close(); err != nil {
			a.logger.Error("Error closing events consumer", err, nil)
		}
	}
	if a.eventsPublisher != nil {
		if err := a.eventsPublisher.Close(); err != nil {
			a.logger.Error("Error closing events publisher", err, nil)
		}
	}
	if a.rabbitMQManager != nil {
		if err := a.rabbitMQManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.notifier != nil {
		a.notifier.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Debug("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent к этому моменту может быть недоступен
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
