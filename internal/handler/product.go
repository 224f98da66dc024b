package handler

import (
	"context"

	"github.com/deppfellow/product-api/internal/model/product"
	"github.com/deppfellow/product-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	msgProductCreated   = "Product Created Successfully"
	msgProductsListed   = "Products Retrieved Successfully"
	msgProductRetrieved = "Product Retrieved Successfully"
	msgProductUpdated   = "Product Updated Successfully"
	msgProductDeleted   = "Product Deleted Successfully"
)

type productService interface {
	CreateProduct(ctx context.Context, p *product.Product) (*product.Product, error)
	ListProducts(ctx context.Context, filter product.ListFilter) ([]product.Product, error)
	GetProductByID(ctx context.Context, id string, fields []string) (*product.Product, error)
	UpdateProduct(ctx context.Context, id string, patch product.Patch) (*product.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	Handler
	products productService
}

func NewProductHandler(s *server.Server, products productService) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		products: products,
	}
}

// project returns p itself for a full selection and a map of the selected
// fields otherwise.
func project(p *product.Product, fields []string) any {
	if len(fields) == 0 {
		return p
	}
	return p.ToMap(fields)
}

func (h *ProductHandler) CreateProduct(c echo.Context, req *product.CreateProductRequest) (Response, error) {
	created, err := h.products.CreateProduct(c.Request().Context(), req.ToProduct())
	if err != nil {
		return Response{}, err
	}

	return Response{Message: msgProductCreated, Data: created}, nil
}

func (h *ProductHandler) ListProducts(c echo.Context, req *product.ListProductsRequest) (Response, error) {
	filter := req.Filter()

	products, err := h.products.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return Response{}, err
	}

	data := make([]any, 0, len(products))
	for i := range products {
		data = append(data, project(&products[i], filter.Fields))
	}

	return Response{Message: msgProductsListed, Data: data}, nil
}

func (h *ProductHandler) GetProduct(c echo.Context, req *product.GetProductRequest) (Response, error) {
	p, err := h.products.GetProductByID(c.Request().Context(), req.ID, req.Selection())
	if err != nil {
		return Response{}, err
	}

	return Response{Message: msgProductRetrieved, Data: project(p, req.Selection())}, nil
}

func (h *ProductHandler) UpdateProduct(c echo.Context, req *product.UpdateProductRequest) (Response, error) {
	updated, err := h.products.UpdateProduct(c.Request().Context(), req.ID, req.ToPatch())
	if err != nil {
		return Response{}, err
	}

	return Response{Message: msgProductUpdated, Data: updated}, nil
}

func (h *ProductHandler) DeleteProduct(c echo.Context, req *product.DeleteProductRequest) (MessageResponse, error) {
	if err := h.products.DeleteProduct(c.Request().Context(), req.ID); err != nil {
		return MessageResponse{}, err
	}

	return MessageResponse{Message: msgProductDeleted}, nil
}
