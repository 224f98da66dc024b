package product

import (
	"errors"
	"testing"

	"github.com/deppfellow/product-api/internal/errs"
	"github.com/deppfellow/product-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductRequest_Validate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var req CreateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"name":"New Product","description":"A new product","price":19.99,"sku":"SKU-1"}`)))
		require.NoError(t, req.Validate())

		p := req.ToProduct()
		assert.Equal(t, "SKU-1", p.SKU)
		assert.Equal(t, "New Product", p.Name)
		require.NotNil(t, p.Description)
		assert.Equal(t, "A new product", *p.Description)
		assert.InDelta(t, 19.99, p.Price, 1e-9)
		assert.Equal(t, StatusDraft, p.Status)
	})

	t.Run("explicit status", func(t *testing.T) {
		var req CreateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"name":"Lamp","price":5,"sku":"L-1","status":"PUBLISHED"}`)))
		require.NoError(t, req.Validate())
		assert.Equal(t, StatusPublished, req.ToProduct().Status)
	})

	t.Run("incomplete body", func(t *testing.T) {
		var req CreateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"name":"Incomplete"}`)))

		err := req.Validate()
		var problems validation.CustomValidationErrors
		require.True(t, errors.As(err, &problems))
		assert.Equal(t, validation.CustomValidationErrors{
			{Field: FieldPrice, Message: "is required"},
			{Field: FieldSKU, Message: "is required"},
		}, problems)
	})

	t.Run("empty body", func(t *testing.T) {
		var req CreateProductRequest
		assert.Error(t, req.Validate())
	})

	t.Run("value rules", func(t *testing.T) {
		var req CreateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"name":"Lamp","price":-1,"sku":"L-1","status":"SOLD"}`)))

		err := req.Validate()
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))

		failed := map[string]string{}
		for _, fe := range verrs {
			failed[fe.Field()] = fe.Tag()
		}
		assert.Equal(t, map[string]string{"price": "gte", "status": "oneof"}, failed)
	})
}

func TestUpdateProductRequest_Validate(t *testing.T) {
	t.Run("partial body", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"name":"Updated Name"}`)))
		require.NoError(t, req.Validate())

		patch := req.ToPatch()
		require.NotNil(t, patch.Name)
		assert.Equal(t, "Updated Name", *patch.Name)
		assert.Nil(t, patch.Price)
		assert.Nil(t, patch.SKU)
		assert.Nil(t, patch.Status)
	})

	t.Run("price must be numeric", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"price":"not-a-number"}`)))

		var problems validation.CustomValidationErrors
		require.True(t, errors.As(req.Validate(), &problems))
		assert.Equal(t, validation.CustomValidationErrors{
			{Field: FieldPrice, Message: "must be a number"},
		}, problems)
	})

	t.Run("unknown field", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"colour":"red"}`)))
		assert.Error(t, req.Validate())
	})

	t.Run("status and price", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, req.UnmarshalJSON([]byte(`{"price":0,"status":"ARCHIVED"}`)))
		require.NoError(t, req.Validate())

		patch := req.ToPatch()
		require.NotNil(t, patch.Price)
		assert.Zero(t, *patch.Price)
		require.NotNil(t, patch.Status)
		assert.Equal(t, StatusArchived, *patch.Status)
	})
}

func TestListProductsRequest_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := &ListProductsRequest{}
		require.NoError(t, req.Validate())
		assert.Equal(t, ListFilter{}, req.Filter())
	})

	t.Run("filter and selection", func(t *testing.T) {
		req := &ListProductsRequest{Fields: "id, name", Status: "PUBLISHED", Limit: 10, Offset: 20}
		require.NoError(t, req.Validate())

		filter := req.Filter()
		assert.Equal(t, []string{FieldID, FieldName}, filter.Fields)
		require.NotNil(t, filter.Status)
		assert.Equal(t, StatusPublished, *filter.Status)
		assert.Equal(t, 10, filter.Limit)
		assert.Equal(t, 20, filter.Offset)
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := &ListProductsRequest{Fields: "invalid"}

		var httpErr *errs.HTTPError
		require.True(t, errors.As(req.Validate(), &httpErr))
		assert.Equal(t, "Invalid fields: invalid", httpErr.Message)
	})

	t.Run("limit out of range", func(t *testing.T) {
		req := &ListProductsRequest{Limit: 5000}
		assert.Error(t, req.Validate())
	})
}

func TestGetProductRequest_Validate(t *testing.T) {
	req := &GetProductRequest{ID: "abc", Fields: "sku,sku,price"}
	require.NoError(t, req.Validate())
	assert.Equal(t, []string{FieldSKU, FieldPrice}, req.Selection())

	bad := &GetProductRequest{ID: "abc", Fields: "sku,secret"}
	assert.Error(t, bad.Validate())
}
