package handler

import (
	"net/http"
	"reflect"
	"time"

	"github.com/deppfellow/product-api/internal/etag"
	"github.com/deppfellow/product-api/internal/middleware"
	"github.com/deppfellow/product-api/internal/server"
	"github.com/deppfellow/product-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc represents a typed endpoint function that receives a bound
// and validated request and returns a response or an error.
//
// Req is a pointer type, e.g. *product.CreateProductRequest, because
// Echo's Bind needs a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful result is written and which
// observability attributes go with it.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in structured logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
//
// With etag set, the response carries an ETag computed over the body and
// a request whose If-None-Match matches it gets a 304 without a body.
type JSONResponseHandler struct {
	status int
	etag   bool
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	if !h.etag {
		return c.JSON(h.status, result)
	}

	tag, err := etag.Generate(result)
	if err != nil {
		return err
	}
	c.Response().Header().Set(etag.HeaderETag, etag.Quote(tag))

	if etag.Match(c.Request().Header.Get(etag.HeaderIfNoneMatch), tag) {
		return c.NoContent(http.StatusNotModified)
	}

	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	if h.etag {
		return "handler_etag"
	}
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
	if txn != nil && h.etag {
		txn.AddAttribute("response.etag", true)
	}
}

// newRequest allocates a zero request of the same type as template, so
// no two requests share a value.
func newRequest[Req validation.Validatable](template Req) Req {
	t := reflect.TypeOf(template)
	if t != nil && t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(Req)
	}
	return template
}

// handleRequest is the shared execution pipeline for all handlers:
// bind and validate, run the handler, log and trace each phase, then
// write the response.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, error handling, logging
// and tracing, and writes its result as JSON with status.
//
// req is only a template: every request binds into a fresh value of its type.
//
//	router.POST("/products", handler.Handle(h.Handler, h.CreateProduct, http.StatusCreated, &product.CreateProductRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return handle(handler, req, JSONResponseHandler{status: status})
}

// HandleWithETag is Handle for cacheable reads: the response carries an
// ETag and If-None-Match is honoured.
func HandleWithETag[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return handle(handler, req, JSONResponseHandler{status: status, etag: true})
}

func handle[Req validation.Validatable, Res any](
	handler HandlerFunc[Req, Res],
	template Req,
	responseHandler ResponseHandler,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(template), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, responseHandler)
	}
}
