package router

import (
	"net/http"

	"github.com/deppfellow/adsfsa-app/internal/handler"
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	users := api.Group("/users")

	getAndHead(users, "", handler.Handle(h.User.Handler, h.User.List, http.StatusOK, &model.ListRequest{}))
	users.POST("", handler.Handle(h.User.Handler, h.User.Create, http.StatusCreated, &model.CreateUserRequest{}))
	getAndHead(users, "/:id", handler.Handle(h.User.Handler, h.User.Get, http.StatusOK, &model.IDRequest{}))
	users.PUT("/:id", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK, &model.UpdateUserRequest{}))
	users.DELETE("/:id", handler.Handle(h.User.Handler, h.User.Delete, http.StatusOK, &model.IDRequest{}))
}

func registerItemRoutes(api *echo.Group, h *handler.Handlers) {
	items := api.Group("/items")

	getAndHead(items, "", handler.Handle(h.Item.Handler, h.Item.List, http.StatusOK, &model.ListRequest{}))
	items.POST("", handler.Handle(h.Item.Handler, h.Item.Create, http.StatusCreated, &model.CreateItemRequest{}))
	getAndHead(items, "/:id", handler.Handle(h.Item.Handler, h.Item.Get, http.StatusOK, &model.IDRequest{}))
	items.PUT("/:id", handler.Handle(h.Item.Handler, h.Item.Update, http.StatusOK, &model.UpdateItemRequest{}))
	items.DELETE("/:id", handler.Handle(h.Item.Handler, h.Item.Delete, http.StatusOK, &model.IDRequest{}))
}
