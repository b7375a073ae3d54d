package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// HTTPRecorder registra métricas de peticiones; *metrics.Metrics lo implementa.
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, status int, d time.Duration)
}

// RequestMiddleware registra cada petición en el log de acceso y en las métricas.
// path es el patrón de ruta, no la URL, para acotar la cardinalidad.
func RequestMiddleware(log *logger.Logger, rec HTTPRecorder) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		d := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		if rec != nil {
			rec.RecordHTTPRequest(c.Method(), path, status, d)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", d)
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("user_id", uid)
		}
		if internal, ok := c.Locals(LocalError).(string); ok && internal != "" {
			ev = ev.Str("error", internal)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("request")
		return err
	}
}
