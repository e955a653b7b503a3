// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"geoprofiles/internal/api/adapters/http/handlers"
	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/config"
	"geoprofiles/internal/api/metrics"
	"geoprofiles/internal/api/ports/api"
	"geoprofiles/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dependencies - сценарии и инфраструктура, которые нужны маршрутизатору.
type Dependencies struct {
	Auth      api.AuthUseCase
	Profiles  api.ProfileUseCase
	Countries api.CountryUseCase

	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer // nil отключает /metrics

	// RateLimiter ограничивает /api/auth. nil отключает ограничение.
	RateLimiter *middleware.RateLimiter
}

// NewApp создает fiber приложение с JSON кодеком и обработчиком ошибок сервиса.
func NewApp(cfg config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	h := handlers.NewHandler(deps.Auth, deps.Profiles, deps.Countries)
	authGuard := middleware.NewAuthMiddleware(deps.Auth, deps.Metrics)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewMetricsMiddleware(deps.Metrics))

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(deps.Gatherer)))
	}

	apiGroup := app.Group("/api")
	apiGroup.Get("/ping", h.Ping)

	apiGroup.Get("/countries", h.Countries)
	apiGroup.Get("/countries/:alpha2", h.Country)

	authRoutes := apiGroup.Group("/auth")
	if deps.RateLimiter != nil {
		authRoutes.Use(deps.RateLimiter.Handler())
	}
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/sign-in", h.SignIn)

	// Защищенные маршруты.
	meRoutes := apiGroup.Group("/me", authGuard)
	meRoutes.Get("/profile", handlers.Authorized(h.MyProfile))
	meRoutes.Patch("/profile", handlers.Authorized(h.PatchMyProfile))
	meRoutes.Post("/updatePassword", handlers.Authorized(h.UpdatePassword))

	profileRoutes := apiGroup.Group("/profiles", authGuard)
	profileRoutes.Get("/:login", handlers.Authorized(h.Profile))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return respond.Reason(c, fiber.StatusNotFound, respond.ReasonRouteNotFound)
	})
}

// errorHandler отвечает на ошибки, которые обработчики не отправили сами.
func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return respond.Reason(c, fe.Code, strings.ToLower(fe.Message))
	}

	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Error(requestCtx, "unhandled error", zap.Error(err))
	return respond.Reason(c, fiber.StatusInternalServerError, respond.ReasonInternal)
}
