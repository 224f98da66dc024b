package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/product-api/internal/errs"
	"github.com/deppfellow/product-api/internal/lib/job"
	"github.com/deppfellow/product-api/internal/model/product"
	"github.com/deppfellow/product-api/internal/repository"
	"github.com/deppfellow/product-api/internal/sqlerr"
	"github.com/deppfellow/product-api/internal/validation"
	"github.com/rs/zerolog"
)

const (
	msgProductNotFound     = "Product not found"
	msgProductUpdateFailed = "Product update failed"
	msgProductDeleteFailed = "Product delete failed"
)

// ProductRepository is the storage the product service depends on.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p *product.Product) (*product.Product, error)
	ListProducts(ctx context.Context, filter product.ListFilter) ([]product.Product, error)
	GetProductByID(ctx context.Context, id string, fields []string) (*product.Product, error)
	UpdateProduct(ctx context.Context, id string, patch product.Patch) (*product.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// EventPublisher receives a product:changed event after every successful mutation.
type EventPublisher interface {
	PublishProductChanged(ctx context.Context, p job.ProductChangedPayload) error
}

type ProductService struct {
	repo   ProductRepository
	events EventPublisher
	logger *zerolog.Logger
}

func NewProductService(repo ProductRepository, events EventPublisher, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, p *product.Product) (*product.Product, error) {
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		if sqlerr.IsConstraintViolation(err) {
			return nil, sqlerr.HandleError(err)
		}
		return nil, err
	}

	s.log(ctx).Info().
		Str("product_id", created.ID).
		Str("sku", created.SKU).
		Msg("product created")

	s.publish(ctx, job.ProductCreated, created.ID, created.SKU)

	return created, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// GetProductByID returns a 404 both for unknown and for malformed ids.
func (s *ProductService) GetProductByID(ctx context.Context, id string, fields []string) (*product.Product, error) {
	if !validation.IsValidUUID(id) {
		return nil, errs.NewNotFoundError(msgProductNotFound, true, nil)
	}

	p, err := s.repo.GetProductByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errs.NewNotFoundError(msgProductNotFound, true, nil)
		}
		return nil, err
	}

	return p, nil
}

// UpdateProduct reports a failed update, unknown or malformed ids included,
// as a 500. Constraint violations stay 400s.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	if !validation.IsValidUUID(id) {
		s.log(ctx).Warn().Str("product_id", id).Msg("product update rejected: malformed id")
		return nil, errs.NewStorageError(msgProductUpdateFailed)
	}

	if patch.IsEmpty() {
		s.log(ctx).Debug().Str("product_id", id).Msg("empty patch, only updated_at changes")
	}

	updated, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		if sqlerr.IsConstraintViolation(err) {
			return nil, sqlerr.HandleError(err)
		}

		s.log(ctx).Error().Err(err).Str("product_id", id).Msg("product update failed")
		return nil, errs.NewStorageError(msgProductUpdateFailed)
	}

	s.publish(ctx, job.ProductUpdated, updated.ID, updated.SKU)

	return updated, nil
}

// DeleteProduct reports a failed delete, unknown or malformed ids included, as a 500.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		s.log(ctx).Warn().Str("product_id", id).Msg("product delete rejected: malformed id")
		return errs.NewStorageError(msgProductDeleteFailed)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.log(ctx).Error().Err(err).Str("product_id", id).Msg("product delete failed")
		return errs.NewStorageError(msgProductDeleteFailed)
	}

	s.publish(ctx, job.ProductDeleted, id, "")

	return nil
}

// publish enqueues a change event. Failures are logged and never fail the request.
func (s *ProductService) publish(ctx context.Context, action job.ProductAction, id, sku string) {
	if s.events == nil {
		return
	}

	err := s.events.PublishProductChanged(ctx, job.ProductChangedPayload{
		Action:     action,
		ProductID:  id,
		SKU:        sku,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log(ctx).Warn().
			Err(err).
			Str("action", string(action)).
			Str("product_id", id).
			Msg("failed to publish product event")
	}
}

// log prefers the request logger stored in ctx.
func (s *ProductService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}
