package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/product-api/internal/model/product"
	"github.com/deppfellow/product-api/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when no row matches the given id.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	server *server.Server
}

func NewProductRepository(s *server.Server) *ProductRepository {
	return &ProductRepository{server: s}
}

// columnExprs maps product fields to select expressions whose output
// columns match the struct's db tags.
var columnExprs = map[string]string{
	product.FieldID:          "id::text AS id",
	product.FieldSKU:         "sku",
	product.FieldName:        "name",
	product.FieldDescription: "description",
	product.FieldPrice:       "price::float8 AS price",
	product.FieldStatus:      "status",
	product.FieldCreatedAt:   "created_at",
	product.FieldUpdatedAt:   "updated_at",
}

// selectColumns builds the select list for fields. No fields means all of them.
func selectColumns(fields []string) string {
	if len(fields) == 0 {
		fields = product.Fields
	}

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if expr, ok := columnExprs[f]; ok {
			cols = append(cols, expr)
		}
	}
	return strings.Join(cols, ", ")
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *product.Product) (*product.Product, error) {
	stmt := `
		INSERT INTO
			products (sku, name, description, price, status)
		VALUES
			(@sku, @name, @description, @price, @status)
		RETURNING
			` + selectColumns(nil)

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"sku":         p.SKU,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"status":      string(p.Status),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute create product query for sku=%s", p.SKU)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[product.Product])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect row from table:products for sku=%s", p.SKU)
	}

	return &created, nil
}

func buildListQuery(filter product.ListFilter) (string, pgx.NamedArgs) {
	var sb strings.Builder
	args := pgx.NamedArgs{}

	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns(filter.Fields))
	sb.WriteString(" FROM products")

	if filter.Status != nil {
		sb.WriteString(" WHERE status = @status")
		args["status"] = string(*filter.Status)
	}

	sb.WriteString(" ORDER BY created_at DESC, id")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT @limit")
		args["limit"] = filter.Limit
	}
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET @offset")
		args["offset"] = filter.Offset
	}

	return sb.String(), args
}

func (r *ProductRepository) ListProducts(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	stmt, args := buildListQuery(filter)

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute list products query")
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[product.Product])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect rows from table:products")
	}

	return products, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string, fields []string) (*product.Product, error) {
	stmt := `SELECT ` + selectColumns(fields) + ` FROM products WHERE id = @id::uuid`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute get product query for id=%s", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[product.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "failed to collect row from table:products for id=%s", id)
	}

	return &p, nil
}

func buildUpdateQuery(id string, patch product.Patch) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{"id": id}
	var sets []string

	if patch.SKU != nil {
		sets = append(sets, "sku = @sku")
		args["sku"] = *patch.SKU
	}
	if patch.Name != nil {
		sets = append(sets, "name = @name")
		args["name"] = *patch.Name
	}
	if patch.Description != nil {
		sets = append(sets, "description = @description")
		args["description"] = *patch.Description
	}
	if patch.Price != nil {
		sets = append(sets, "price = @price")
		args["price"] = *patch.Price
	}
	if patch.Status != nil {
		sets = append(sets, "status = @status")
		args["status"] = string(*patch.Status)
	}
	sets = append(sets, "updated_at = now()")

	stmt := "UPDATE products SET " + strings.Join(sets, ", ") +
		" WHERE id = @id::uuid RETURNING " + selectColumns(nil)

	return stmt, args
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	stmt, args := buildUpdateQuery(id, patch)

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute update product query for id=%s", id)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[product.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "failed to collect row from table:products for id=%s", id)
	}

	return &updated, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM products WHERE id = @id::uuid`, pgx.NamedArgs{"id": id})
	if err != nil {
		return errors.Wrapf(err, "failed to execute delete product query for id=%s", id)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
