package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(http.StatusCreated))
	assert.Equal(t, "3xx", classifyStatus(http.StatusNotModified))
	assert.Equal(t, "4xx", classifyStatus(http.StatusBadRequest))
	assert.Equal(t, "5xx", classifyStatus(http.StatusInternalServerError))
	assert.Equal(t, "unknown", classifyStatus(0))
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetricsMiddleware()

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/products/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.ErrNotFound
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/api/v1/products/a", "/api/v1/products/b", "/api/v1/products/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/api/v1/products/:id",status="2xx"} 2`))
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/api/v1/products/:id",status="4xx"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
