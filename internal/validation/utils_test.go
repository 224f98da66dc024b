package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/product-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetRequest struct {
	payload Payload

	ID    string  `param:"id" json:"-"`
	Name  string  `json:"name" validate:"required,max=5"`
	Price float64 `json:"price" validate:"gte=0"`
}

var widgetSchema = Schema{
	"name":  {Required: true, Type: TypeString},
	"price": {Required: true, Type: TypeNumber},
}

func (r *widgetRequest) UnmarshalJSON(data []byte) error {
	return r.payload.UnmarshalJSON(data)
}

func (r *widgetRequest) Validate() error {
	if problems := widgetSchema.Check(r.payload); len(problems) > 0 {
		return problems
	}
	r.Name, _ = r.payload.String("name")
	r.Price, _ = r.payload.Number("price")
	return Struct(r)
}

func bindWidget(t *testing.T, body string) (*widgetRequest, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/widgets/abc", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/widgets/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	w := &widgetRequest{}
	return w, BindAndValidate(c, w)
}

func requireValidationError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "Validation Error")
	return httpErr
}

func TestBindAndValidate_Success(t *testing.T) {
	w, err := bindWidget(t, `{"name":"Lamp","price":3.5}`)
	require.NoError(t, err)

	assert.Equal(t, "abc", w.ID)
	assert.Equal(t, "Lamp", w.Name)
	assert.InDelta(t, 3.5, w.Price, 1e-9)
}

func TestBindAndValidate_SchemaFailure(t *testing.T) {
	_, err := bindWidget(t, `{"price":"cheap"}`)

	httpErr := requireValidationError(t, err)
	assert.Equal(t, "Validation Error: name is required, price must be a number", httpErr.Message)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "price", Error: "must be a number"},
	}, httpErr.Errors)
}

func TestBindAndValidate_TagFailure(t *testing.T) {
	_, err := bindWidget(t, `{"name":"Chandelier","price":-1}`)

	httpErr := requireValidationError(t, err)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "must not exceed 5 characters"},
		{Field: "price", Error: "must be at least 0"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := bindWidget(t, `{"name":`)
		requireValidationError(t, err)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := bindWidget(t, `["Lamp"]`)
		httpErr := requireValidationError(t, err)
		assert.Contains(t, httpErr.Message, ErrNotAnObject.Error())
	})
}

type selectionRequest struct {
	Fields string `query:"fields"`
}

func (r *selectionRequest) Validate() error {
	_, err := ParseFieldSelection(r.Fields, knownFields)
	return err
}

func TestBindAndValidate_PassesThroughHTTPErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/widgets?fields=invalid", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := BindAndValidate(c, &selectionRequest{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, errs.CodeInvalidFields, httpErr.Code)
	assert.Equal(t, "Invalid fields: invalid", httpErr.Message)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("8f14e45f-ceea-4e7a-9d2b-1c7b6c3f0a11"))
	assert.False(t, IsValidUUID("nonexistentid"))
	assert.False(t, IsValidUUID(""))
}
