package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"geoprofiles/internal/api/metrics"
)

const unmatchedRoute = "unmatched"

// NewMetricsMiddleware считает запросы и их длительность по шаблону маршрута.
// Ошибка цепочки сразу отдается обработчику ошибок приложения, чтобы записать итоговый статус ответа.
func NewMetricsMiddleware(rec metrics.Recorder) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := unmatchedRoute
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		rec.RecordRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
