// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/deppfellow/product-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Products *ProductRepository
}

// NewRepositories constructs the repository container.
//
// Repositories share the pool on s.DB; nothing is opened here.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Products: NewProductRepository(s),
	}
}
