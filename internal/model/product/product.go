// Package product holds the Product resource and the request types for
// the product endpoints.
package product

import "time"

// Status is the lifecycle state of a product.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Selectable product fields.
const (
	FieldID          = "id"
	FieldSKU         = "sku"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// Fields lists every field of a product in response order.
var Fields = []string{
	FieldID,
	FieldSKU,
	FieldName,
	FieldDescription,
	FieldPrice,
	FieldStatus,
	FieldCreatedAt,
	FieldUpdatedAt,
}

type Product struct {
	ID          string    `json:"id" db:"id"`
	SKU         string    `json:"sku" db:"sku"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ToMap projects the product onto fields. An empty selection keeps every field.
// Unknown names are ignored; selections are checked before they get here.
func (p *Product) ToMap(fields []string) map[string]any {
	if len(fields) == 0 {
		fields = Fields
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case FieldID:
			out[f] = p.ID
		case FieldSKU:
			out[f] = p.SKU
		case FieldName:
			out[f] = p.Name
		case FieldDescription:
			out[f] = p.Description
		case FieldPrice:
			out[f] = p.Price
		case FieldStatus:
			out[f] = p.Status
		case FieldCreatedAt:
			out[f] = p.CreatedAt
		case FieldUpdatedAt:
			out[f] = p.UpdatedAt
		}
	}
	return out
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	SKU         *string
	Name        *string
	Description *string
	Price       *float64
	Status      *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.SKU == nil && p.Name == nil && p.Description == nil && p.Price == nil && p.Status == nil
}

// ListFilter narrows and pages a product listing. A zero Limit means no limit.
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
	Fields []string
}
