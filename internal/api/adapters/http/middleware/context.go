// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/domain/entities"
)

const (
	localsRequestCtx = "requestCtx"
	localsPrincipal  = "principal"

	// HeaderRequestID - заголовок с идентификатором запроса.
	HeaderRequestID = "X-Request-ID"
)

// RequestContext возвращает контекст запроса с идентификатором и логгером.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestCtx).(context.Context); ok && ctx != nil {
		return ctx
	}
	return c.Context()
}

func setRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(localsRequestCtx, ctx)
}

// Principal возвращает пользователя, прошедшего проверку токена.
func Principal(c fiber.Ctx) (*entities.User, bool) {
	user, ok := c.Locals(localsPrincipal).(*entities.User)
	return user, ok && user != nil
}
