// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/middleware"
	"github.com/deppfellow/account-service/internal/server"
)

// NewRouter builds the Echo instance serving every route.
//
// Middleware order matters: the request id must exist before the context
// logger is built, and the request logger must see the logger. Recover is
// innermost so panics are logged like any other handler error.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerAccountRoutes(router, h)

	return router
}

// registerAccountRoutes registers the account lookup. Only GET is routed:
// echo answers other methods with 405 and an Allow header.
func registerAccountRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/accounts", handler.Handle(h.Account.GetAccount, http.StatusOK, handler.NewGetAccountRequest))
}
