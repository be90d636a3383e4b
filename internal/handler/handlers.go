// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer and writes the response. Handlers never build error
// responses themselves; they return errors to the global error handler.
package handler

import (
	"github.com/deppfellow/visited-countries/internal/server"
	"github.com/deppfellow/visited-countries/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	Users   *UserHandler
	Visited *VisitedHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Users:   NewUserHandler(s, services.Users),
		Visited: NewVisitedHandler(s, services.Visited),
	}
}
