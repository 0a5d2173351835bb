// Package handler is the HTTP layer, the first entry point after the router.
//
// It binds and validates requests through the validation package, calls the
// service layer and shapes the JSON responses.
package handler

import (
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Image         *ImageHandler
	Administrator *AdministratorHandler
	Contact       *ContactHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Image:         NewImageHandler(s, services.Image),
		Administrator: NewAdministratorHandler(s, services.Administrator),
		Contact:       NewContactHandler(s, services.Contact),
	}
}
