package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/internal/interfaces/http/handler"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy store", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.Get(server, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		resp := testutil.JSONResponseAs[struct {
			Success bool                   `json:"success"`
			Data    handler.HealthResponse `json:"data"`
		}](t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "healthy", resp.Data.Status)
		assert.Equal(t, "connected", resp.Data.Database)
	})

	t.Run("unreachable store", func(t *testing.T) {
		db := testutil.NewSQLiteDatabase(t)
		server := newEngine(t, db, handler.NewSystemHandler(failingPinger{}))

		w := testutil.Get(server, "/health")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		resp := testutil.JSONResponseAs[struct {
			Success bool                   `json:"success"`
			Data    handler.HealthResponse `json:"data"`
		}](t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "disconnected", resp.Data.Database)
	})
}

func TestSystemHandler_Root(t *testing.T) {
	server := newTestServer(t)

	testutil.AssertRedirect(t, testutil.Get(server, "/"), "/products")
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	w := testutil.Get(server, "/pies")
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
