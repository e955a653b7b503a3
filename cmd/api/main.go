// Package main реализует точку входа API профилей.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"geoprofiles/internal/api/adapters/cache"
	apihttp "geoprofiles/internal/api/adapters/http"
	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/postgres"
	"geoprofiles/internal/api/adapters/services"
	"geoprofiles/internal/api/app"
	"geoprofiles/internal/api/config"
	"geoprofiles/internal/api/db"
	"geoprofiles/internal/api/metrics"
	"geoprofiles/internal/api/ports/repositories"
	"geoprofiles/internal/api/resilience"
	redisclient "geoprofiles/pkg/db/redis"
	"geoprofiles/pkg/logger"
	"geoprofiles/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "API_LOGGER_MODE"
	EnvLoggerLevel = "API_LOGGER_LEVEL"
	EnvConfigPath  = "API_CONFIG_PATH"

	defaultConfigPath = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrStartHTTP            = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "profiles service started"
	LogServiceShutdownDone = "profiles service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingLimiter     = "stopping rate limiter"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing country cache"
	LogCacheDisabled       = "redis unavailable, country cache disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		exitCode = run(ctx, log)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context, log *logger.Logger) int {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(ctx, configPath)
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

	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return 1
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	log.Info(ctx, LogInitRepo)
	repoFactory := postgres.NewRepositoryFactory(database.Pool())
	userRepo := repoFactory.UserRepository()
	countryRepo, redisClient := withCountryCache(ctx, cfg, repoFactory.CountryRepository(), recorder)

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.BCryptCost, time.Now)
	passwordService := serviceFactory.PasswordService()
	tokenService := serviceFactory.TokenService()

	log.Info(ctx, LogInitUseCases)
	authUseCase := app.NewAuthUseCase(userRepo, countryRepo, passwordService, tokenService, cfg.JWT.TokenTTL, time.Now)
	profileUseCase := app.NewProfileUseCase(userRepo, countryRepo, passwordService, time.Now)
	countryUseCase := app.NewCountryUseCase(countryRepo)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:            rate.Limit(cfg.RateLimit.RPS),
			Burst:           cfg.RateLimit.Burst,
			IdleTTL:         cfg.RateLimit.IdleTTL,
			CleanupInterval: cfg.RateLimit.Interval,
		})
	}

	log.Info(ctx, LogInitHTTPServer)
	server := apihttp.NewApp(cfg.HTTP)
	apihttp.SetupRouter(server, apihttp.Dependencies{
		Auth:        authUseCase,
		Profiles:    profileUseCase,
		Countries:   countryUseCase,
		Metrics:     recorder,
		Gatherer:    registry,
		RateLimiter: limiter,
	})

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	listener, err := net.Listen("tcp", cfg.HTTP.GetAddress())
	if err != nil {
		log.Error(ctx, ErrStartHTTP, zap.Error(err))
		database.Close(ctx)
		return 1
	}
	go func() {
		if err := server.Listener(listener, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrStartHTTP, zap.Error(err))
		}
	}()

	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
	}
	if redisClient != nil {
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogClosingRedis)
			return redisClient.Close()
		})
	}
	if limiter != nil {
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingLimiter)
			limiter.Stop()
			return nil
		})
	}

	if err := shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
		if errors.Is(err, shutdown.ErrShutdownTimeout) {
			return 1
		}
	}

	log.Info(ctx, LogServiceShutdownDone)
	return 0
}

// withCountryCache оборачивает справочник стран кэшем Redis, если он включен и доступен.
// Недоступный Redis не мешает запуску: сервис работает напрямую с Postgres.
func withCountryCache(
	ctx context.Context,
	cfg *config.Config,
	countries repositories.CountryRepository,
	rec metrics.Recorder,
) (repositories.CountryRepository, *goredis.Client) {
	if !cfg.Redis.Enabled {
		return countries, nil
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogInitCache, zap.String("addr", cfg.Redis.GetAddress()))

	client, err := redisclient.Connect(ctx, redisclient.Options{
		Addr:         cfg.Redis.GetAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdle,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Warn(ctx, LogCacheDisabled, zap.Error(err))
		return countries, nil
	}

	breaker := resilience.NewCircuitBreaker(cache.CountriesCacheName, resilience.DefaultCircuitBreakerConfig())
	redisCache := cache.NewRedisCache(client, cfg.Redis.DefaultTTL)
	return cache.NewCountryRepository(countries, redisCache, cfg.Redis.DefaultTTL, breaker, rec), client
}
