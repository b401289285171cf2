// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Account *AccountHandler // Account serves the account lookup.
	Health  *HealthHandler  // Health serves the status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API description.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Account: NewAccountHandler(services.Account),
		Health:  NewHealthHandler(s.Config.Primary.Env, s.DB),
		OpenAPI: NewOpenAPIHandler(),
	}
}
