package router

import (
	"net/http"

	"github.com/deppfellow/product-api/internal/handler"
	"github.com/deppfellow/product-api/internal/model/product"
	"github.com/labstack/echo/v4"
)

func registerProductRoutes(r *echo.Group, h *handler.Handlers) {
	products := r.Group("/products")

	products.POST("", handler.Handle(
		h.Product.Handler,
		h.Product.CreateProduct,
		http.StatusCreated,
		&product.CreateProductRequest{},
	))

	products.GET("", handler.HandleWithETag(
		h.Product.Handler,
		h.Product.ListProducts,
		http.StatusOK,
		&product.ListProductsRequest{},
	))

	products.GET("/:id", handler.HandleWithETag(
		h.Product.Handler,
		h.Product.GetProduct,
		http.StatusOK,
		&product.GetProductRequest{},
	))

	products.PUT("/:id", handler.Handle(
		h.Product.Handler,
		h.Product.UpdateProduct,
		http.StatusOK,
		&product.UpdateProductRequest{},
	))

	products.DELETE("/:id", handler.Handle(
		h.Product.Handler,
		h.Product.DeleteProduct,
		http.StatusOK,
		&product.DeleteProductRequest{},
	))
}
