package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a recording provider globally for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func newTracedRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "test-service"})...)
	router.GET("/product/edit/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return router
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	handlers := TracingWithConfig(TracingConfig{Enabled: false})
	assert.Empty(t, handlers)

	router := gin.New()
	router.Use(handlers...)
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test").Code)
}

func TestTracingWithConfig_Enabled(t *testing.T) {
	sr := setupTestTracer(t)
	router := newTracedRouter()

	w := serve(router, http.MethodGet, "/product/edit/3", RequestIDHeader, "req-edit-3")
	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr.Ended(), "GET /product/edit/:id")
	require.NotNil(t, span, "HTTP span not found")
	assert.NotEqual(t, codes.Error, span.Status().Code)

	attrs := attribute.NewSet(span.Attributes()...)
	value, ok := attrs.Value("request_id")
	require.True(t, ok, "request_id attribute not found in span")
	assert.Equal(t, "req-edit-3", value.AsString())
}

func TestTracingWithConfig_MarksClientErrors(t *testing.T) {
	sr := setupTestTracer(t)
	router := newTracedRouter()

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/missing").Code)

	span := findSpan(sr.Ended(), "GET /missing")
	require.NotNil(t, span)
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "Not Found", span.Status().Description)
}

func TestTracingWithConfig_SkipsHealth(t *testing.T) {
	sr := setupTestTracer(t)
	router := newTracedRouter()

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health").Code)
	assert.Empty(t, sr.Ended())
}

func TestTracingWithConfig_PropagatesParent(t *testing.T) {
	sr := setupTestTracer(t)
	router := newTracedRouter()

	serve(router, http.MethodGet, "/product/edit/1",
		"traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	span := findSpan(sr.Ended(), "GET /product/edit/:id")
	require.NotNil(t, span)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", span.Parent().SpanID().String())
}

func TestSpanErrorMarker_NoSpan(t *testing.T) {
	router := gin.New()
	router.Use(SpanErrorMarker())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusBadRequest, "bad")
	})

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/test").Code)
}
