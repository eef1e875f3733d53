package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/middleware"
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Health check names accepted in observability.health_checks.checks.
const (
	CheckStore = "store"
	CheckRedis = "redis"
)

// HealthHandler reports whether the service and its dependencies are up.
type HealthHandler struct {
	Handler
	repos *repository.Repositories
}

func NewHealthHandler(s *server.Server, repos *repository.Repositories) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		repos:   repos,
	}
}

// CheckHealth returns 200 when every configured check passes and 503
// otherwise. A Redis failure only fails the check when Redis backs the
// store.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	cfg := h.server.Config
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": cfg.Primary.Env,
		"backend":     h.repos.Backend,
	}

	checks := make(map[string]interface{})
	isHealthy := true

	hc := cfg.Observability.HealthChecks
	if hc.Enabled {
		for _, name := range hc.Checks {
			var ping func(ctx context.Context) error
			required := true

			switch name {
			case CheckStore:
				ping = h.repos.Pets.Ping
			case CheckRedis:
				if h.server.Redis == nil {
					continue
				}
				ping = func(ctx context.Context) error {
					return h.server.Redis.Ping(ctx).Err()
				}
				required = h.repos.Backend == config.BackendRedis
			default:
				continue
			}

			result, err := h.runCheck(c.Request().Context(), hc.Timeout, ping)
			checks[name] = result
			if err != nil {
				if required {
					isHealthy = false
				}
				h.recordFailure(&logger, name, result, err)
				continue
			}

			logger.Debug().
				Str("check", name).
				Msg("health check passed")
		}
	}
	response["checks"] = checks

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) runCheck(parent context.Context, timeout time.Duration, ping func(context.Context) error) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)

	result := map[string]interface{}{
		"status":        "healthy",
		"response_time": time.Since(checkStart).String(),
	}
	if err != nil {
		result["status"] = "unhealthy"
		result["error"] = err.Error()
	}
	return result, err
}

func (h *HealthHandler) recordFailure(logger *zerolog.Logger, name string, result map[string]interface{}, err error) {
	logger.Error().
		Err(err).
		Str("check", name).
		Interface("response_time", result["response_time"]).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":    name,
			"operation":     "health_check",
			"error_type":    name + "_unhealthy",
			"error_message": err.Error(),
		})
	}
}
