package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/deppfellow/adsfsa-app/internal/repository"
	"github.com/deppfellow/adsfsa-app/internal/server"
)

const (
	msgItemNotFound     = "Item not found"
	msgItemUpdated      = "Item updated successfully"
	msgItemDeleted      = "Item deleted successfully"
	errCodeItemNotFound = "ITEM_NOT_FOUND"
)

type ItemService struct {
	server *server.Server
	repo   *repository.ItemRepository
}

func NewItemService(s *server.Server, repo *repository.ItemRepository) *ItemService {
	return &ItemService{server: s, repo: repo}
}

func itemNotFound() *errs.HTTPError {
	code := errCodeItemNotFound
	return errs.NewNotFoundError(msgItemNotFound, true, &code)
}

func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) Get(ctx context.Context, rawID string) (*model.Item, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, itemNotFound()
	}

	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, itemNotFound()
	}
	return item, err
}

// Create stores a new item. UserID is a weak reference and is not
// checked against the users table.
func (s *ItemService) Create(ctx context.Context, in repository.ItemInput) (*model.Item, error) {
	item, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	loggerFor(ctx, s.server).Info().Int64("item_id", item.ID).Msg("item created")
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, rawID string, in repository.ItemInput) (string, error) {
	id, ok := parseID(rawID)
	if !ok {
		return "", itemNotFound()
	}

	n, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", itemNotFound()
	}

	return msgItemUpdated, nil
}

func (s *ItemService) Delete(ctx context.Context, rawID string) (string, error) {
	id, ok := parseID(rawID)
	if !ok {
		return "", itemNotFound()
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", itemNotFound()
	}

	loggerFor(ctx, s.server).Info().Int64("item_id", id).Msg("item deleted")
	return msgItemDeleted, nil
}
