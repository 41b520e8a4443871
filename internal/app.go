package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rentals-data-platform/internal/adapters/bronzestorage"
	"rentals-data-platform/internal/adapters/kijijifetcher"
	logger_adapter "rentals-data-platform/internal/adapters/logger"
	"rentals-data-platform/internal/adapters/miniostorage"
	postgres_adapter "rentals-data-platform/internal/adapters/postgres"
	"rentals-data-platform/internal/configs"
	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"
	"rentals-data-platform/internal/core/usecase"
	fluentlogger "rentals-data-platform/pkg/fluent_logger"
	"rentals-data-platform/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	// Общие адаптеры (нужны обоим flow)
	objectStorage port.ObjectStoragePort
	bronzeStorage *bronzestorage.BronzeStorageAdapter

	// Адаптеры конкретных flow, заполняются лениво
	scraper port.SiteScraperPort
	dbPool  *pgxpool.Pool
	repo    port.SilverRepositoryPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
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

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ОБЪЕКТНОЕ ХРАНИЛИЩЕ (bronze-слой нужен обоим flow) ---
	storageLogger := baseLogger.WithFields(port.Fields{"component": "minio_storage"})
	objectStorage, err := miniostorage.NewMinIOStorageAdapter(context.Background(), miniostorage.Config{
		Endpoint:  appConfig.MinIO.Endpoint,
		AccessKey: appConfig.MinIO.AccessKey,
		SecretKey: appConfig.MinIO.SecretKey,
		Secure:    appConfig.Environment == configs.EnvironmentProd,
	}, appConfig.MinIO.Bucket, storageLogger)
	if err != nil {
		appLogger.Error("Failed to create MinIO storage adapter", err, nil)
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	appLogger.Info("MinIO Storage Adapter initialized.", port.Fields{"bucket": appConfig.MinIO.Bucket})

	bronzeStorage, err := bronzestorage.NewBronzeStorageAdapter(objectStorage, appConfig.MinIO.Bucket)
	if err != nil {
		appLogger.Error("Failed to create bronze storage adapter", err, nil)
		return nil, err
	}

	return &App{
		config:        appConfig,
		fluentClient:  fluentClient,
		logger:        baseLogger,
		objectStorage: objectStorage,
		bronzeStorage: bronzeStorage,
	}, nil
}

// RunScrapeToBronze выполняет один запуск scrape-to-bronze flow и
// возвращает ошибку, если flow завершился со статусом error.
func (a *App) RunScrapeToBronze(req usecase.ScrapeRequest) error {
	appLogger := a.logger.WithFields(port.Fields{"component": "app"})

	scraper, err := kijijifetcher.NewKijijiFetcherAdapter(kijijifetcher.Config{
		UserAgent:            a.config.Scraper.UserAgent,
		DownloadDelaySeconds: a.config.Scraper.DownloadDelaySeconds,
	})
	if err != nil {
		appLogger.Error("Failed to create Kijiji Fetcher Adapter", err, nil)
		return fmt.Errorf("failed to initialize kijiji fetcher: %w", err)
	}
	a.scraper = scraper
	appLogger.Info("Kijiji Fetcher Adapter initialized.", nil)

	scrapeUseCase := usecase.NewScrapeToBronzeUseCase(scraper, a.bronzeStorage)
	appLogger.Info("All use cases initialized.", nil)

	ctx, cancel := a.signalContext()
	defer cancel()
	ctx = contextkeys.ContextWithLogger(ctx, a.logger)

	result := scrapeUseCase.Execute(ctx, req)
	appLogger.Info("Scrape-to-bronze flow finished", port.Fields{
		"status":          string(result.Status),
		"total_listings":  result.TotalListings,
		"failed_listings": result.FailedListings,
	})
	if result.Status == domain.FlowStatusError {
		return fmt.Errorf("scrape-to-bronze flow failed: %s", result.Error)
	}
	return nil
}

// RunBronzeToSilver выполняет загрузку одной bronze-партиции в silver-слой.
func (a *App) RunBronzeToSilver(partition domain.ScrapePartition) error {
	appLogger := a.logger.WithFields(port.Fields{"component": "app"})

	ctx, cancel := a.signalContext()
	defer cancel()
	ctx = contextkeys.ContextWithLogger(ctx, a.logger)

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: a.config.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	repo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
	if err != nil {
		return err
	}
	a.repo = repo

	loadUseCase := usecase.NewBronzeToSilverUseCase(a.bronzeStorage, repo)

	result := loadUseCase.Execute(ctx, partition)
	appLogger.Info("Bronze-to-silver flow finished", port.Fields{
		"status":         string(result.Status),
		"records_read":   result.RecordsRead,
		"records_loaded": result.RecordsLoaded,
	})
	if result.Status == domain.FlowStatusError {
		return fmt.Errorf("bronze-to-silver flow failed: %s", result.Error)
	}
	return nil
}

// Shutdown освобождает все ресурсы приложения. Безопасен к повторному вызову.
func (a *App) Shutdown() {
	appLogger := a.logger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Shutdown sequence initiated...", nil)

	if a.scraper != nil {
		a.scraper.Close()
		a.scraper = nil
	}
	if a.repo != nil {
		a.repo.Close()
		a.repo = nil
		a.dbPool = nil
	} else if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
	}

	appLogger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		appLogger.Info("Closing Fluent Bit connection...", nil)
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

// signalContext возвращает контекст, отменяемый по SIGINT/SIGTERM.
func (a *App) signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case receivedSignal := <-quit:
			a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(quit)
	}()

	return ctx, cancel
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
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
