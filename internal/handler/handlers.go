package handler

import (
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/deppfellow/adsfsa-app/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	System *SystemHandler
	Health *HealthHandler
	User   *UserHandler
	Item   *ItemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		System: NewSystemHandler(s),
		Health: NewHealthHandler(s),
		User:   NewUserHandler(s, services.Users),
		Item:   NewItemHandler(s, services.Items),
	}
}
