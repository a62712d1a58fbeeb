package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/lineDispatch/internal/adapters/handlers"
	"github.com/iwtcode/lineDispatch/internal/adapters/repositories/memory"
	"github.com/iwtcode/lineDispatch/internal/adapters/repositories/postgres"
	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/interfaces"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
	"github.com/iwtcode/lineDispatch/internal/middleware/swagger"
	"github.com/iwtcode/lineDispatch/internal/services/events"
	"github.com/iwtcode/lineDispatch/internal/services/odoo"
	"github.com/iwtcode/lineDispatch/internal/services/plc"
	"github.com/iwtcode/lineDispatch/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(lc fx.Lifecycle, cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	logger := logging.NewLogger(loggerCfg, "LineDispatchApp")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return logger.Close()
		},
	})
	return logger
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideRepository выбирает хранилище журнала по AUDIT_STORE
func ProvideRepository(cfg *config.AppConfig, logger *logging.Logger) (interfaces.DispatchRecordRepository, error) {
	if cfg.Audit.Store == config.AuditStorePostgres {
		return postgres.NewRepository(cfg, logger)
	}
	logger.Info("Dispatch journal is kept in memory", "capacity", memory.DefaultCapacity)
	return memory.NewDispatchRecordRepository(memory.DefaultCapacity), nil
}

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(ProvideRepository),
)

func ProvidePublisher(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) (interfaces.EventPublisher, error) {
	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Dispatch events publisher ready", "broker", cfg.Events.Broker)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

var ProducerModule = fx.Module("producer_module",
	fx.Provide(ProvidePublisher),
)

func ProvideOrderBackend(cfg *config.AppConfig, logger *logging.Logger) interfaces.OrderBackend {
	caller := odoo.NewXMLRPCCaller(cfg.Odoo.URL, cfg.Odoo.Timeout)
	return odoo.NewService(cfg.Odoo, caller, logger)
}

func ProvideLineController(cfg *config.AppConfig, logger *logging.Logger) interfaces.LineController {
	logger.Info("Lines configured", "ilots", cfg.OPCUA.LineIDs())
	return plc.NewController(cfg.OPCUA, plc.NewOPCUADialer(), logger)
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(
		ProvideOrderBackend,
		ProvideLineController,
	),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
	fx.Invoke(InvokeUsecaseShutdown),
)

// InvokeUsecaseShutdown дожидается фоновых импульсов подтверждения при остановке.
func InvokeUsecaseShutdown(lc fx.Lifecycle, uc interfaces.Usecases) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return uc.Shutdown(ctx)
		},
	})
}

func NewSwaggerConfig(cfg *config.AppConfig) *swagger.Config {
	return &swagger.Config{
		Enabled:  cfg.SwaggerEnable,
		Path:     "/swagger",
		BasePath: "/api",
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := cfg.Addr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
