package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/roundtrip/internal/middleware"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/service"
	"github.com/labstack/echo/v4"
)

// defaultHealthTimeout applies when no observability block is configured.
const defaultHealthTimeout = 5 * time.Second

// HealthHandler reports whether the service and its store are reachable.
type HealthHandler struct {
	Handler
	testRecordService *service.TestRecordService
}

func NewHealthHandler(s *server.Server, testRecordService *service.TestRecordService) *HealthHandler {
	return &HealthHandler{
		Handler:           NewHandler(s),
		testRecordService: testRecordService,
	}
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return defaultHealthTimeout
}

// CheckHealth pings the configured store. It answers 200 when the ping
// succeeds and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	driver := h.server.Config.Store.Driver
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}
	checks := response["checks"].(map[string]interface{})

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
	defer cancel()

	storeStart := time.Now()
	err := h.testRecordService.Ping(ctx)
	storeDuration := time.Since(storeStart)

	if err != nil {
		checks["store"] = map[string]interface{}{
			"driver":        driver,
			"status":        "unhealthy",
			"response_time": storeDuration.String(),
			"error":         err.Error(),
		}
		response["status"] = "unhealthy"

		logger.Error().
			Err(err).
			Str("driver", driver).
			Dur("response_time", storeDuration).
			Msg("store health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       "store",
				"store_driver":     driver,
				"operation":        "health_check",
				"error_type":       "store_unhealthy",
				"response_time_ms": storeDuration.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	checks["store"] = map[string]interface{}{
		"driver":        driver,
		"status":        "healthy",
		"response_time": storeDuration.String(),
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
