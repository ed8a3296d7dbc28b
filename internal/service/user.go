package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/adsfsa-app/internal/errs"
	"github.com/deppfellow/adsfsa-app/internal/model"
	"github.com/deppfellow/adsfsa-app/internal/repository"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/deppfellow/adsfsa-app/internal/sqlerr"
)

const (
	msgUserNotFound      = "User not found"
	msgEmailExists       = "Email already exists"
	msgUserUpdated       = "User updated successfully"
	msgUserDeleted       = "User deleted successfully"
	errCodeUserNotFound  = "USER_NOT_FOUND"
	errCodeEmailConflict = "USER_EMAIL_EXISTS"
)

type UserService struct {
	server *server.Server
	repo   *repository.UserRepository
}

func NewUserService(s *server.Server, repo *repository.UserRepository) *UserService {
	return &UserService{server: s, repo: repo}
}

func userNotFound() *errs.HTTPError {
	code := errCodeUserNotFound
	return errs.NewNotFoundError(msgUserNotFound, true, &code)
}

func emailConflict() *errs.HTTPError {
	code := errCodeEmailConflict
	return errs.NewConflictError(msgEmailExists, true, &code)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, rawID string) (*model.User, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, userNotFound()
	}

	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, userNotFound()
	}
	return user, err
}

// Create stores a new user. The store's unique index on email is the
// only duplicate check.
func (s *UserService) Create(ctx context.Context, name, email string) (*model.User, error) {
	user, err := s.repo.Create(ctx, name, email)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, emailConflict()
		}
		return nil, err
	}

	loggerFor(ctx, s.server).Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, rawID, name, email string) (string, error) {
	id, ok := parseID(rawID)
	if !ok {
		return "", userNotFound()
	}

	n, err := s.repo.Update(ctx, id, name, email)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return "", emailConflict()
		}
		return "", err
	}
	if n == 0 {
		return "", userNotFound()
	}

	return msgUserUpdated, nil
}

// Delete removes a user. Items pointing at it keep their user_id.
func (s *UserService) Delete(ctx context.Context, rawID string) (string, error) {
	id, ok := parseID(rawID)
	if !ok {
		return "", userNotFound()
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return "", userNotFound()
	}

	loggerFor(ctx, s.server).Info().Int64("user_id", id).Msg("user deleted")
	return msgUserDeleted, nil
}
