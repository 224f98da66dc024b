package product

import (
	"github.com/deppfellow/product-api/internal/validation"
)

// MaxPrice is the largest price a NUMERIC(12,2) column can hold.
const MaxPrice = 9999999999.99

// CreateSchema describes the body of a create request.
var CreateSchema = validation.Schema{
	FieldSKU:         {Required: true, Type: validation.TypeString},
	FieldName:        {Required: true, Type: validation.TypeString},
	FieldDescription: {Type: validation.TypeString},
	FieldPrice:       {Required: true, Type: validation.TypeNumber},
	FieldStatus:      {Type: validation.TypeString},
}

// UpdateSchema describes the body of an update request. Every field is optional.
var UpdateSchema = validation.Schema{
	FieldSKU:         {Type: validation.TypeString},
	FieldName:        {Type: validation.TypeString},
	FieldDescription: {Type: validation.TypeString},
	FieldPrice:       {Type: validation.TypeNumber},
	FieldStatus:      {Type: validation.TypeString},
}

// ------------------------------------------------------------

type CreateProductRequest struct {
	payload validation.Payload

	SKU         string  `json:"sku" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Price       float64 `json:"price" validate:"gte=0,lte=9999999999.99"`
	Status      Status  `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func (r *CreateProductRequest) UnmarshalJSON(data []byte) error {
	return r.payload.UnmarshalJSON(data)
}

func (r *CreateProductRequest) Validate() error {
	if problems := CreateSchema.Check(r.payload); len(problems) > 0 {
		return problems
	}

	r.SKU, _ = r.payload.String(FieldSKU)
	r.Name, _ = r.payload.String(FieldName)
	r.Price, _ = r.payload.Number(FieldPrice)
	if d, ok := r.payload.String(FieldDescription); ok {
		r.Description = &d
	}
	if s, ok := r.payload.String(FieldStatus); ok {
		r.Status = Status(s)
	}

	return validation.Struct(r)
}

// ToProduct returns the product to insert. Status defaults to DRAFT.
func (r *CreateProductRequest) ToProduct() *Product {
	status := r.Status
	if status == "" {
		status = StatusDraft
	}

	return &Product{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Status:      status,
	}
}

// ------------------------------------------------------------

type ListProductsRequest struct {
	Fields string `query:"fields"`
	Status string `query:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Limit  int    `query:"limit" validate:"gte=0,lte=1000"`
	Offset int    `query:"offset" validate:"gte=0"`

	selection []string
}

func (r *ListProductsRequest) Validate() error {
	selection, err := validation.ParseFieldSelection(r.Fields, Fields)
	if err != nil {
		return err
	}
	r.selection = selection

	return validation.Struct(r)
}

func (r *ListProductsRequest) Filter() ListFilter {
	filter := ListFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
		Fields: r.selection,
	}
	if r.Status != "" {
		status := Status(r.Status)
		filter.Status = &status
	}
	return filter
}

// ------------------------------------------------------------

type GetProductRequest struct {
	ID     string `param:"id"`
	Fields string `query:"fields"`

	selection []string
}

func (r *GetProductRequest) Validate() error {
	selection, err := validation.ParseFieldSelection(r.Fields, Fields)
	if err != nil {
		return err
	}
	r.selection = selection
	return nil
}

// Selection returns the parsed field selection, nil meaning every field.
func (r *GetProductRequest) Selection() []string {
	return r.selection
}

// ------------------------------------------------------------

type UpdateProductRequest struct {
	payload validation.Payload

	ID          string   `param:"id" json:"-"`
	SKU         *string  `json:"sku" validate:"omitnil,min=1,max=64"`
	Name        *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string  `json:"description" validate:"omitnil,max=2000"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0,lte=9999999999.99"`
	Status      *Status  `json:"status" validate:"omitnil,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func (r *UpdateProductRequest) UnmarshalJSON(data []byte) error {
	return r.payload.UnmarshalJSON(data)
}

func (r *UpdateProductRequest) Validate() error {
	if problems := UpdateSchema.Check(r.payload); len(problems) > 0 {
		return problems
	}

	if v, ok := r.payload.String(FieldSKU); ok {
		r.SKU = &v
	}
	if v, ok := r.payload.String(FieldName); ok {
		r.Name = &v
	}
	if v, ok := r.payload.String(FieldDescription); ok {
		r.Description = &v
	}
	if v, ok := r.payload.Number(FieldPrice); ok {
		r.Price = &v
	}
	if v, ok := r.payload.String(FieldStatus); ok {
		status := Status(v)
		r.Status = &status
	}

	return validation.Struct(r)
}

func (r *UpdateProductRequest) ToPatch() Patch {
	return Patch{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Status:      r.Status,
	}
}

// ------------------------------------------------------------

type DeleteProductRequest struct {
	ID string `param:"id"`
}

func (r *DeleteProductRequest) Validate() error {
	return nil
}
