// Package respond переводит ошибки сервиса в HTTP ответы вида {"reason": "..."}.
package respond

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/app/dto"
	"geoprofiles/internal/api/domain/entities"
)

// Причины, которые формирует транспортный слой.
const (
	ReasonInternal        = "internal error"
	ReasonRouteNotFound   = "route not found"
	ReasonTooManyRequests = "too many requests"
)

var kindStatus = []struct {
	kind   error
	status int
}{
	{entities.ErrValidation, fiber.StatusBadRequest},
	{entities.ErrConflict, fiber.StatusConflict},
	{entities.ErrUnauthorized, fiber.StatusUnauthorized},
	{entities.ErrForbidden, fiber.StatusForbidden},
	{entities.ErrNotFound, fiber.StatusNotFound},
}

// Classify возвращает код ответа и причину для ошибки.
// ok = false означает внутреннюю ошибку: клиент получит 500 без подробностей.
func Classify(err error) (status int, reason string, ok bool) {
	var re *entities.ReasonError
	if !errors.As(err, &re) {
		return fiber.StatusInternalServerError, ReasonInternal, false
	}
	for _, ks := range kindStatus {
		if errors.Is(re, ks.kind) {
			return ks.status, re.Reason, true
		}
	}
	return fiber.StatusInternalServerError, ReasonInternal, false
}

// Reason пишет ответ с причиной отказа.
func Reason(c fiber.Ctx, status int, reason string) error {
	if err := c.Status(status).JSON(dto.ErrorResponse{Reason: reason}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error пишет ответ для ошибки сервиса.
func Error(c fiber.Ctx, err error) error {
	status, reason, _ := Classify(err)
	return Reason(c, status, reason)
}

// JSON пишет успешный ответ.
func JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
