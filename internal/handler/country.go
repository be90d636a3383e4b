package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/server"
	"github.com/deppfellow/visited-countries/internal/service"
)

type VisitedHandler struct {
	Handler
	visited *service.VisitedService
}

func NewVisitedHandler(s *server.Server, visited *service.VisitedService) *VisitedHandler {
	return &VisitedHandler{
		Handler: NewHandler(s),
		visited: visited,
	}
}

func (h *VisitedHandler) ListVisited(c echo.Context, req *model.ListVisitedPayload) ([]string, error) {
	return h.visited.List(c.Request().Context(), req.UserID)
}

func (h *VisitedHandler) AddVisited(c echo.Context, req *model.AddVisitedPayload) (*model.VisitedCountry, error) {
	return h.visited.Add(c.Request().Context(), req.UserID, req.Country)
}

func (h *VisitedHandler) RemoveVisited(c echo.Context, req *model.RemoveVisitedPayload) (string, error) {
	if err := h.visited.Remove(c.Request().Context(), req.UserID, req.Country); err != nil {
		return "", err
	}
	return service.MsgVisitDeleted, nil
}
