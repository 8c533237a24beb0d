package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	bloghttp "bloglist/internal/blogs/adapters/http"
	"bloglist/internal/blogs/config"
	"bloglist/internal/blogs/wire"
	"bloglist/pkg/logger"
	"bloglist/pkg/shutdown"
)

// Переменные окружения, читаемые до загрузки конфигурации.
const (
	EnvLoggerMode  = "BLOGS_LOGGER_MODE"
	EnvLoggerLevel = "BLOGS_LOGGER_LEVEL"
	EnvConfigPath  = "BLOGS_CONFIG_PATH"
)

// Сообщения об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrBuildComponents      = "failed to build service components"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Ошибки Sync для консольных дескрипторов, которые можно игнорировать.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Сообщения сервиса.
const (
	LogServiceStarted      = "blogs service started"
	LogServiceShutdownDone = "blogs service shutdown complete"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	os.Exit(run())
}

func run() int {
	env := logger.Development
	if strings.EqualFold(os.Getenv(EnvLoggerMode), "production") {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrInitLogger, err)
		return 1
	}
	logger.SetGlobalLogger(log)
	defer func() { syncLogger(log) }()

	ctx := logger.NewRequestIDContext(context.Background(), "")

	envPath := os.Getenv(EnvConfigPath)
	if envPath == "" {
		envPath = config.DefaultEnvPath
	}

	cfg, err := config.Load(ctx, envPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	components, err := wire.Build(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrBuildComponents, zap.Error(err))
		return 1
	}

	app := bloghttp.NewApp(&cfg.HTTP)
	bloghttp.SetupRouter(app, bloghttp.Services{
		Auth:    components.Auth,
		Users:   components.Users,
		Blogs:   components.Blogs,
		Testing: components.Testing,
	})

	serveCtx, cancelServe := context.WithCancel(ctx)
	defer cancelServe()

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			cancelServe()
		}
	}()

	// Хранилище закрывается только после остановки HTTP сервера.
	stopServer := func(ctx context.Context) error {
		log.Info(ctx, LogStoppingHTTP)
		return errors.Join(app.ShutdownWithContext(ctx), components.Close(ctx))
	}

	if err := shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(), stopServer); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
		return 1
	}

	log.Info(ctx, LogServiceShutdownDone)
	return 0
}

func syncLogger(log *logger.Logger) {
	err := log.Sync()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, ErrSyncStderr) || strings.Contains(msg, ErrSyncStdout) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
}
