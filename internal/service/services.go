// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, calls the repository methods and
// turns store outcomes (no row, unique violation, zero rows affected)
// into the application errors the API reports.
package service

import (
	"context"
	"strconv"

	"github.com/deppfellow/adsfsa-app/internal/repository"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/rs/zerolog"
)

type Services struct {
	Users *UserService
	Items *ItemService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users: NewUserService(s, repos.Users),
		Items: NewItemService(s, repos.Items),
	}, nil
}

// parseID converts a path id. Anything that is not an integer can never
// match a row, so callers report it as not found.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// loggerFor returns the request logger carried by ctx, falling back to
// the server logger for calls made outside an HTTP request.
func loggerFor(ctx context.Context, s *server.Server) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.Logger
}
