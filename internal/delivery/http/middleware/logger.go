package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/metrics"
)

// RequestIDHeader - заголовок сквозного идентификатора запроса
const RequestIDHeader = "X-Request-ID"

// Logger - middleware структурированного логирования запросов.
// Каждому запросу назначается request id (входящий переиспользуется),
// метод, шаблон пути, статус и длительность уходят в лог и в метрики.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Locals("request_id", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// ошибка ещё не прошла через ErrorHandler, статус приблизим сами
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		elapsed := time.Since(start)
		// в метки идёт шаблон маршрута, а не сырой URL:
		// кардинальность метрик не должна расти с числом значений параметров
		routePath := c.Route().Path
		statusLabel := strconv.Itoa(status)

		metrics.HTTPRequests.WithLabelValues(c.Method(), routePath, statusLabel).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), routePath, statusLabel).Observe(elapsed.Seconds())

		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.String("ip", c.IP()))

		return err
	}
}
