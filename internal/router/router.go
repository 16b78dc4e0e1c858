// Package router builds the Echo router: it installs the middleware chain and
// maps routes to handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/roundtrip/internal/handler"
	"github.com/deppfellow/roundtrip/internal/middleware"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the request id exists before the New Relic
// transaction is decorated, and both exist before the request logger is
// built from them.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Metrics(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, s, h)
	registerTestRecordRoutes(router, h)

	return router
}

func registerTestRecordRoutes(r *echo.Echo, h *handler.Handlers) {
	tr := h.TestRecord

	// Any method: non-POST submissions are stored as rejections.
	r.Any("/upload", handler.HandleText(tr.Handler, tr.Submit, http.StatusOK, &handler.SubmitTestRecordRequest{}))
	r.GET("/response", handler.Handle(tr.Handler, tr.Fetch, http.StatusOK, &handler.FetchTestRecordRequest{}))
}
