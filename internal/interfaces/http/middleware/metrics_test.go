package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func setupTestMeter(t *testing.T) (*telemetry.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func metricsRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/product/edit/:id", func(c *gin.Context) { c.String(http.StatusOK, "Apple pie") })
	router.POST("/product/add", func(c *gin.Context) { c.Status(http.StatusFound) })
	return router
}

func attrValue(set attribute.Set, key attribute.Key) attribute.Value {
	v, _ := set.Value(key)
	return v
}

func TestHTTPMetrics_DisabledIsPassThrough(t *testing.T) {
	mp, reader := setupTestMeter(t)

	tests := []struct {
		name string
		cfg  HTTPMetricsConfig
	}{
		{"disabled", HTTPMetricsConfig{MeterProvider: mp, Enabled: false}},
		{"nil provider", HTTPMetricsConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(metricsRouter(HTTPMetrics(tt.cfg)), http.MethodGet, "/product/edit/3")
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}

	assert.Empty(t, collectMetrics(t, reader))
}

func TestHTTPMetrics_RecordsPerRoute(t *testing.T) {
	mp, reader := setupTestMeter(t)
	router := metricsRouter(HTTPMetrics(HTTPMetricsConfig{MeterProvider: mp, Enabled: true}))

	serve(router, http.MethodGet, "/product/edit/3")
	serve(router, http.MethodGet, "/product/edit/4")

	form := url.Values{"name": {"Plum pie"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/product/add", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(httptest.NewRecorder(), req)

	serve(router, http.MethodGet, "/nowhere")

	metrics := collectMetrics(t, reader)

	t.Run("request totals use the route pattern", func(t *testing.T) {
		sum, ok := metrics["http_server_request_total"].Data.(metricdata.Sum[int64])
		require.True(t, ok)

		counts := make(map[string]int64)
		for _, dp := range sum.DataPoints {
			key := attrValue(dp.Attributes, telemetry.AttrHTTPRoute).AsString() + " " +
				attrValue(dp.Attributes, telemetry.AttrHTTPStatusCode).Emit()
			counts[key] += dp.Value
		}
		assert.Equal(t, map[string]int64{
			"/product/edit/:id 200": 2,
			"/product/add 302":      1,
			"unknown 404":           1,
		}, counts)
	})

	t.Run("duration is recorded for every request", func(t *testing.T) {
		h, ok := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
		require.True(t, ok)

		var total uint64
		for _, dp := range h.DataPoints {
			total += dp.Count
		}
		assert.Equal(t, uint64(4), total)
	})

	t.Run("request size only for bodies", func(t *testing.T) {
		h, ok := metrics["http_server_request_size_bytes"].Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		require.Len(t, h.DataPoints, 1)
		assert.Equal(t, "/product/add", attrValue(h.DataPoints[0].Attributes, telemetry.AttrHTTPRoute).AsString())
		assert.Equal(t, float64(len(form)), h.DataPoints[0].Sum)
	})

	t.Run("response size", func(t *testing.T) {
		h, ok := metrics["http_server_response_size_bytes"].Data.(metricdata.Histogram[float64])
		require.True(t, ok)

		var edits uint64
		for _, dp := range h.DataPoints {
			if attrValue(dp.Attributes, telemetry.AttrHTTPRoute).AsString() == "/product/edit/:id" {
				edits += dp.Count
				assert.Equal(t, float64(2*len("Apple pie")), dp.Sum)
			}
		}
		assert.Equal(t, uint64(2), edits)
	})

	t.Run("no requests left in flight", func(t *testing.T) {
		sum, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
		require.True(t, ok)

		var active int64
		for _, dp := range sum.DataPoints {
			active += dp.Value
		}
		assert.Zero(t, active)
	})
}
