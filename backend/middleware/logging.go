package middleware

import (
	"time"

	"finquest/backend/metrics"
	"finquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingMiddleware logs every request once it has been handled and records
// the request metrics under the matched route pattern.
func LoggingMiddleware(logger *zap.Logger) fiber.Handler {
	logger = logger.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// hand off to the rest of the chain
		err := c.Next()
		if err != nil {
			// let the app error handler write the envelope so the status is final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()
		// label values outlive the request; fasthttp reuses the buffers behind c.Method()
		method := fiberutils.CopyString(c.Method())
		route := fiberutils.CopyString(c.Route().Path)
		metrics.ObserveRequest(method, route, status, latency)

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.IP()),
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if reqErr, ok := c.Locals(utils.LocalsErrorKey).(error); ok {
			fields = append(fields, zap.Error(reqErr))
		}

		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}
		if ce := logger.Check(level, "request"); ce != nil {
			ce.Write(fields...)
		}
		return nil
	}
}
