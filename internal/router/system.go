package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/visited-countries/internal/handler"
	"github.com/deppfellow/visited-countries/internal/server"
)

// registerSystemRoutes registers endpoints that are not part of the domain:
// the health check and the static front-end assets.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	if dir := s.Config.Server.StaticDir; dir != "" {
		r.Static("/", dir)
	}
}
