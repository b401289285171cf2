package middleware

import (
	"github.com/deppfellow/account-service/internal/server"
)

// Middlewares is a lightweight container that groups all middleware components
// used by the HTTP server.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// request logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
