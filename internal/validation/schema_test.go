package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"name":     {Required: true, Type: TypeString},
	"price":    {Required: true, Type: TypeNumber},
	"featured": {Type: TypeBoolean},
	"notes":    {Type: TypeString},
}

func decodePayload(t *testing.T, body string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestSchema_Check(t *testing.T) {
	tests := []struct {
		name string
		body string
		want CustomValidationErrors
	}{
		{
			name: "valid payload",
			body: `{"name":"Lamp","price":19.99,"featured":true}`,
			want: nil,
		},
		{
			name: "missing required fields",
			body: `{"notes":"x"}`,
			want: CustomValidationErrors{
				{Field: "name", Message: "is required"},
				{Field: "price", Message: "is required"},
			},
		},
		{
			name: "wrong types",
			body: `{"name":42,"price":"not-a-number","featured":"yes"}`,
			want: CustomValidationErrors{
				{Field: "featured", Message: "must be a boolean"},
				{Field: "name", Message: "must be a string"},
				{Field: "price", Message: "must be a number"},
			},
		},
		{
			name: "null is not a value",
			body: `{"name":"Lamp","price":1,"notes":null}`,
			want: CustomValidationErrors{
				{Field: "notes", Message: "must be a string"},
			},
		},
		{
			name: "unknown field",
			body: `{"name":"Lamp","price":1,"colour":"red"}`,
			want: CustomValidationErrors{
				{Field: "colour", Message: "is not a recognized field"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testSchema.Check(decodePayload(t, tt.body))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_CheckDoesNotModifyPayload(t *testing.T) {
	p := decodePayload(t, `{"name":"Lamp","colour":"red"}`)
	_ = testSchema.Check(p)
	assert.Len(t, p, 2)
}

func TestPayload_UnmarshalJSON(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"price":12345678901234567890.5,"name":"x"}`), &p))

	n, ok := p["price"].(json.Number)
	require.True(t, ok, "numbers must be decoded as json.Number")
	assert.Equal(t, "12345678901234567890.5", n.String())

	assert.ErrorIs(t, json.Unmarshal([]byte(`[1,2]`), &p), ErrNotAnObject)
}

func TestPayload_Accessors(t *testing.T) {
	p := decodePayload(t, `{"name":"Lamp","price":19.5,"featured":false}`)

	s, ok := p.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Lamp", s)

	f, ok := p.Number("price")
	assert.True(t, ok)
	assert.InDelta(t, 19.5, f, 1e-9)

	b, ok := p.Bool("featured")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = p.Number("name")
	assert.False(t, ok)
	assert.True(t, p.Has("featured"))
	assert.False(t, p.Has("notes"))
}
