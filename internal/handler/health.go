package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/galeria-api/internal/middleware"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	Descricao = "API da galeria: imagens, administradores e contatos"
	Autor     = "deppfellow"

	// DatabaseConnected is reported by / when the ping succeeds.
	DatabaseConnected = "conectado"
)

// Version is stamped at build time with -ldflags "-X .../internal/handler.Version=...".
var Version = "dev"

// RootResponse is the body of GET /.
type RootResponse struct {
	Descricao    string `json:"descricao"`
	Autor        string `json:"autor"`
	Versao       string `json:"versao"`
	BancoDeDados string `json:"banco_de_dados"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves / and /status.
type HealthHandler struct {
	Handler
	db pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
	}
	if s.DB != nil {
		h.db = s.DB
	}
	return h
}

func (h *HealthHandler) pingTimeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

func (h *HealthHandler) checkEnabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HealthCheckEnabled(name)
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.db == nil {
		return fmt.Errorf("database not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout())
	defer cancel()
	return h.db.Ping(ctx)
}

// Root describes the service and reports live database connectivity. It is
// always 200; banco_de_dados carries the ping error text on failure.
func (h *HealthHandler) Root(c echo.Context) error {
	status := DatabaseConnected
	if err := h.pingDatabase(c.Request().Context()); err != nil {
		middleware.GetLogger(c).Warn().Err(err).Msg("database ping failed")
		status = err.Error()
	}

	return c.JSON(http.StatusOK, RootResponse{
		Descricao:    Descricao,
		Autor:        Autor,
		Versao:       Version,
		BancoDeDados: status,
	})
}

// CheckHealth reports dependency checks: 200 when the database answers, 503
// otherwise. Redis is optional, so a Redis failure is reported without
// failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"version":     Version,
		"checks":      checks,
	}

	isHealthy := true

	if h.checkEnabled("database") {
		dbStart := time.Now()

		if err := h.pingDatabase(c.Request().Context()); err != nil {
			checks["database"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}
			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthCheckError("database", err, time.Since(dbStart))
		} else {
			checks["database"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}
		}
	}

	if h.server.Redis != nil && h.checkEnabled("redis") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.pingTimeout())
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthCheckError("redis", err, time.Since(redisStart))
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordHealthCheckError(check string, err error, elapsed time.Duration) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       check + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
