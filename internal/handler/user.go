package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/server"
	"github.com/deppfellow/visited-countries/internal/service"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListUsersPayload) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

func (h *UserHandler) GetUserByID(c echo.Context, req *model.GetUserByIDPayload) (*model.User, error) {
	return h.users.GetByID(c.Request().Context(), req.ID)
}

func (h *UserHandler) GetUserByName(c echo.Context, req *model.GetUserByNamePayload) (*model.User, error) {
	return h.users.GetByName(c.Request().Context(), req.Name)
}

func (h *UserHandler) CreateUser(c echo.Context, req *model.CreateUserPayload) (*model.User, error) {
	return h.users.Create(c.Request().Context(), req.Name, req.Color)
}

func (h *UserHandler) RenameUser(c echo.Context, req *model.RenameUserPayload) ([]model.User, error) {
	return h.users.Rename(c.Request().Context(), req.ID, req.Name, req.NewName)
}

func (h *UserHandler) ChangeColor(c echo.Context, req *model.ChangeColorPayload) ([]model.User, error) {
	return h.users.ChangeColor(c.Request().Context(), req.ID, req.Color)
}

func (h *UserHandler) DeleteUser(c echo.Context, req *model.DeleteUserPayload) (string, error) {
	if err := h.users.Delete(c.Request().Context(), req.ID); err != nil {
		return "", err
	}
	return service.MsgUserDeleted, nil
}
