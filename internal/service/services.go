// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/product-api/internal/lib/job"
	"github.com/deppfellow/product-api/internal/repository"
	"github.com/deppfellow/product-api/internal/server"
)

type Services struct {
	Product *ProductService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var events EventPublisher
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		Product: NewProductService(repos.Products, events, s.Logger),
		Job:     s.Job,
	}, nil
}
