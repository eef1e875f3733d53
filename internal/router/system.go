package router

import (
	"github.com/deppfellow/petstore/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that sit outside the API
// base path: health and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/swagger.json", h.OpenAPI.ServeDocument)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
