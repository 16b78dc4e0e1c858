package router

import (
	"github.com/deppfellow/roundtrip/internal/handler"
	"github.com/deppfellow/roundtrip/internal/metrics"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMetricsPath = "/metrics"

// registerSystemRoutes registers health, metrics and docs endpoints.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	healthEnabled, metricsEnabled, metricsPath := true, true, defaultMetricsPath
	if obs := s.Config.Observability; obs != nil {
		healthEnabled = obs.HealthChecks.Enabled
		metricsEnabled = obs.Metrics.Enabled
		if obs.Metrics.Path != "" {
			metricsPath = obs.Metrics.Path
		}
	}

	if healthEnabled {
		r.GET("/status", h.Health.CheckHealth)
	}
	if metricsEnabled {
		metrics.RegisterMetrics()
		r.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
	}

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
}
