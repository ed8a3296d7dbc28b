// Package repository handles all interactions with the database.
//
// It contains the SQL statements behind every API operation, one
// parameterized statement per method, and hides the dialect and
// row-scanning details from the service layer.
package repository

import (
	"github.com/deppfellow/adsfsa-app/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users *UserRepository
	Items *ItemRepository
}

// NewRepositories constructs the repository container on top of the
// server's shared store connection.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s.DB),
		Items: NewItemRepository(s.DB),
	}
}
