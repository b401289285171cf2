package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/account-service/internal/handler"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic.
//
// Routes include:
//  1. Health endpoint
//  2. OpenAPI description
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers/monitors).
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
