package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"geoprofiles/internal/api/adapters/http/respond"
	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/metrics"
	"geoprofiles/internal/api/ports/api"
	"geoprofiles/pkg/logger"
)

const (
	bearerPrefix = "Bearer "

	logAuthRejected = "authorization rejected"
)

// NewAuthMiddleware проверяет токен из заголовка Authorization и кладет владельца в контекст запроса.
func NewAuthMiddleware(auth api.AuthUseCase, rec metrics.Recorder) fiber.Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), bearerPrefix)
		token = strings.TrimSpace(token)
		if !found || token == "" {
			log.Debug(requestCtx, logAuthRejected, zap.Error(entities.ErrInvalidToken))
			rec.RecordAuthFailure(entities.ErrInvalidToken.Reason)
			return respond.Error(c, entities.ErrInvalidToken)
		}

		user, err := auth.Authenticate(requestCtx, token)
		if err != nil {
			status, reason, known := respond.Classify(err)
			if !known {
				log.Error(requestCtx, logAuthRejected, zap.Error(err))
			}
			if status == fiber.StatusUnauthorized {
				rec.RecordAuthFailure(reason)
			}
			return respond.Reason(c, status, reason)
		}

		c.Locals(localsPrincipal, user)
		setRequestContext(c, logger.NewContext(requestCtx, logger.Log(requestCtx).With(zap.Int64(logger.UserID, user.ID))))
		return c.Next()
	}
}
