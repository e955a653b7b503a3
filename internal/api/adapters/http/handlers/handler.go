// Package handlers содержит HTTP обработчики API профилей.
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"geoprofiles/internal/api/adapters/http/middleware"
	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/app/dto"
	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/api"
	"geoprofiles/pkg/logger"
)

const (
	logInvalidRequest       = "invalid request"
	logFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики сервиса.
type Handler struct {
	auth      api.AuthUseCase
	profiles  api.ProfileUseCase
	countries api.CountryUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(auth api.AuthUseCase, profiles api.ProfileUseCase, countries api.CountryUseCase) *Handler {
	return &Handler{
		auth:      auth,
		profiles:  profiles,
		countries: countries,
	}
}

// Ping отвечает, что сервис жив.
func (h *Handler) Ping(c fiber.Ctx) error {
	return respond.JSON(c, fiber.StatusOK, dto.StatusOK)
}

// bind разбирает тело запроса. При ошибке ответ уже отправлен и ok = false.
func bind(c fiber.Ctx, out any) (ok bool, err error) {
	if bindErr := c.Bind().JSON(out); bindErr != nil {
		requestCtx := middleware.RequestContext(c)
		logger.Log(requestCtx).Debug(requestCtx, logInvalidRequest, zap.Error(bindErr))
		return false, respond.Error(c, entities.ErrInvalidRequest)
	}
	return true, nil
}

// fail отвечает на ошибку сценария. Внутренние ошибки пишутся в журнал, клиент видит только причину.
func fail(c fiber.Ctx, err error) error {
	if _, _, known := respond.Classify(err); !known {
		requestCtx := middleware.RequestContext(c)
		logger.Log(requestCtx).Error(requestCtx, logFailedToServeRequest, zap.Error(err))
	}
	return respond.Error(c, err)
}

// Authorized передает обработчику владельца токена. Без проверки токена маршрут отвечает 401.
func Authorized(next func(c fiber.Ctx, user *entities.User) error) fiber.Handler {
	return func(c fiber.Ctx) error {
		user, ok := middleware.Principal(c)
		if !ok {
			return respond.Error(c, entities.ErrInvalidToken)
		}
		return next(c, user)
	}
}
