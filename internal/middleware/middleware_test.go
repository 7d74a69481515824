package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"promoservice/internal/pkg/metrics"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	// Arrange
	router := newRouter(RequestID())
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = requestID(c)
		c.Status(http.StatusOK)
	})

	// Act
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	router := newRouter(RequestID())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	router := newRouter(ErrorLogger(), RequestID())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS(t *testing.T) {
	router := newRouter(CORS([]string{"https://shop.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := map[string]string{
		"https://shop.example.com": "https://shop.example.com",
		"http://localhost:5173":    "http://localhost:5173",
		"https://evil.example.com": "",
	}
	for origin, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	router := newRouter(Metrics())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "418"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "418"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPInflightRequests))
}
