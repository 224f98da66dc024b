package repository

import (
	"testing"

	"github.com/deppfellow/product-api/internal/model/product"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestSelectColumns(t *testing.T) {
	all := selectColumns(nil)
	assert.Equal(t,
		"id::text AS id, sku, name, description, price::float8 AS price, status, created_at, updated_at",
		all,
	)

	assert.Equal(t, "name, id::text AS id", selectColumns([]string{product.FieldName, product.FieldID}))
}

func TestBuildListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		stmt, args := buildListQuery(product.ListFilter{Fields: []string{product.FieldID}})

		assert.Equal(t, "SELECT id::text AS id FROM products ORDER BY created_at DESC, id", stmt)
		assert.Empty(t, args)
	})

	t.Run("status and paging", func(t *testing.T) {
		status := product.StatusPublished
		stmt, args := buildListQuery(product.ListFilter{
			Status: &status,
			Limit:  10,
			Offset: 30,
			Fields: []string{product.FieldSKU},
		})

		assert.Equal(t,
			"SELECT sku FROM products WHERE status = @status ORDER BY created_at DESC, id LIMIT @limit OFFSET @offset",
			stmt,
		)
		assert.Equal(t, pgx.NamedArgs{"status": "PUBLISHED", "limit": 10, "offset": 30}, args)
	})
}

func TestBuildUpdateQuery(t *testing.T) {
	id := "8f14e45f-ceea-4e7a-9d2b-1c7b6c3f0a11"

	t.Run("partial patch", func(t *testing.T) {
		name := "Updated Name"
		price := 5.5
		stmt, args := buildUpdateQuery(id, product.Patch{Name: &name, Price: &price})

		assert.Equal(t,
			"UPDATE products SET name = @name, price = @price, updated_at = now() WHERE id = @id::uuid RETURNING "+selectColumns(nil),
			stmt,
		)
		assert.Equal(t, pgx.NamedArgs{"id": id, "name": name, "price": price}, args)
	})

	t.Run("empty patch only touches updated_at", func(t *testing.T) {
		stmt, args := buildUpdateQuery(id, product.Patch{})

		assert.Contains(t, stmt, "SET updated_at = now() WHERE")
		assert.Equal(t, pgx.NamedArgs{"id": id}, args)
	})
}
