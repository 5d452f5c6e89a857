package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/pkg/logger"
)

// RequestLogger registra método, ruta, status, bytes y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// El status final lo decide el ErrorHandler de la app.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			if internal, ok := c.Locals(localInternalError).(error); ok {
				chainErr = internal
			}
			ev = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Int("bytes", len(c.Response().Body())).
			Dur("dur", time.Since(start)).
			Msg("request")
		return nil
	}
}
