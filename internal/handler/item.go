package handler

import (
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/deppfellow/adsfsa-app/internal/repository"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/deppfellow/adsfsa-app/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	Handler
	items *service.ItemService
}

func NewItemHandler(s *server.Server, items *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

func (h *ItemHandler) List(c echo.Context, _ *model.ListRequest) (model.Envelope, error) {
	items, err := h.items.List(c.Request().Context())
	if err != nil {
		return model.Envelope{}, err
	}
	return model.List(items), nil
}

func (h *ItemHandler) Get(c echo.Context, req *model.IDRequest) (model.Envelope, error) {
	item, err := h.items.Get(c.Request().Context(), req.ID)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.OK(item), nil
}

func (h *ItemHandler) Create(c echo.Context, req *model.CreateItemRequest) (model.Envelope, error) {
	item, err := h.items.Create(c.Request().Context(), repository.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		return model.Envelope{}, err
	}
	return model.OK(item), nil
}

func (h *ItemHandler) Update(c echo.Context, req *model.UpdateItemRequest) (model.Envelope, error) {
	msg, err := h.items.Update(c.Request().Context(), req.ID, repository.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		return model.Envelope{}, err
	}
	return model.Message(msg), nil
}

func (h *ItemHandler) Delete(c echo.Context, req *model.IDRequest) (model.Envelope, error) {
	msg, err := h.items.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.Message(msg), nil
}
