package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve sends one request through router. headers is a flat list of name/value pairs.
func serve(router http.Handler, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func productsRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func TestCORS_DefaultWhitelistIsEmpty(t *testing.T) {
	router := productsRouter(CORS())

	w := serve(router, http.MethodGet, "/products", "Origin", "http://elsewhere.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodGet, "/products")
	assert.Equal(t, "ok", w.Body.String())

	w = serve(router, http.MethodOptions, "/products", "Origin", "http://elsewhere.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://localhost:3000", "http://admin.local"}
	router := productsRouter(CORSWithConfig(cfg))

	t.Run("listed origin is echoed", func(t *testing.T) {
		h := serve(router, http.MethodGet, "/products", "Origin", "http://admin.local").Header()

		assert.Equal(t, "http://admin.local", h.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
		assert.Contains(t, h.Get("Access-Control-Expose-Headers"), "Location")
		assert.Equal(t, "43200", h.Get("Access-Control-Max-Age"))
	})

	t.Run("unlisted origin gets no grant", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/products", "Origin", "http://other.local")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard grants every origin", func(t *testing.T) {
		open := productsRouter(CORSWithConfig(CORSConfig{AllowOrigins: []string{"*"}, MaxAge: time.Minute}))

		w := serve(open, http.MethodOptions, "/products", "Origin", "http://anywhere.local")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/products", func(c *gin.Context) {
		seen = c.GetString(logger.RequestIDKey)
		c.Status(http.StatusOK)
	})

	t.Run("generated when absent", func(t *testing.T) {
		id := serve(router, http.MethodGet, "/products").Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, seen)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("caller value is kept", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/products", RequestIDHeader, "req-42")
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-42", seen)
	})

	t.Run("oversized caller value is replaced", func(t *testing.T) {
		long := strings.Repeat("x", MaxRequestIDLength+1)
		got := serve(router, http.MethodGet, "/products", RequestIDHeader, long).Header().Get(RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.NotEqual(t, long, got)
	})

	t.Run("unique per request", func(t *testing.T) {
		ids := make(map[string]struct{})
		for range 50 {
			ids[serve(router, http.MethodGet, "/products").Header().Get(RequestIDHeader)] = struct{}{}
		}
		assert.Len(t, ids, 50)
	})
}

func TestSecure(t *testing.T) {
	h := serve(productsRouter(Secure()), http.MethodGet, "/products").Header()

	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'none'")
	assert.Contains(t, h.Get("Permissions-Policy"), "camera=()")
}

func TestSecureWithConfig_EmptyDirectives(t *testing.T) {
	h := serve(productsRouter(SecureWithConfig(SecurityConfig{})), http.MethodGet, "/products").Header()

	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Empty(t, h.Get("Content-Security-Policy"))
	assert.Empty(t, h.Get("Permissions-Policy"))
}
