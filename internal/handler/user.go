package handler

import (
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/deppfellow/adsfsa-app/internal/service"
	"github.com/labstack/echo/v4"
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

func (h *UserHandler) List(c echo.Context, _ *model.ListRequest) (model.Envelope, error) {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return model.Envelope{}, err
	}
	return model.List(users), nil
}

func (h *UserHandler) Get(c echo.Context, req *model.IDRequest) (model.Envelope, error) {
	user, err := h.users.Get(c.Request().Context(), req.ID)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.OK(user), nil
}

func (h *UserHandler) Create(c echo.Context, req *model.CreateUserRequest) (model.Envelope, error) {
	user, err := h.users.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.OK(user), nil
}

func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (model.Envelope, error) {
	msg, err := h.users.Update(c.Request().Context(), req.ID, req.Name, req.Email)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.Message(msg), nil
}

func (h *UserHandler) Delete(c echo.Context, req *model.IDRequest) (model.Envelope, error) {
	msg, err := h.users.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.Message(msg), nil
}
