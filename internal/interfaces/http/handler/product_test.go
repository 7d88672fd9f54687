package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productForm(name, price, stock string) url.Values {
	return url.Values{
		"name":        {name},
		"category":    {"Fruit"},
		"description": {"Tart and flaky."},
		"price":       {price},
		"stock":       {stock},
	}
}

func TestProductHandler_List(t *testing.T) {
	server := newTestServer(t)

	t.Run("lists every product in key order", func(t *testing.T) {
		w := testutil.Get(server, "/products")
		require.Equal(t, http.StatusOK, w.Code)

		resp := testutil.JSONResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Equal(t, dto.EntityProduct, data["entity"])
		assert.Len(t, data["fields"], 5)

		records := testutil.Records(t, w)
		require.Len(t, records, 10)
		assert.Equal(t, "Apple pie", records[0]["name"])
		assert.Equal(t, "9.99", records[0]["price"])
		assert.EqualValues(t, 10, records[9]["id"])
	})

	t.Run("search matches substrings of the name", func(t *testing.T) {
		records := testutil.Records(t, testutil.Get(server, "/products?search=pie"))
		assert.Len(t, records, 10)

		records = testutil.Records(t, testutil.Get(server, "/products?search=Apple"))
		assert.Equal(t, []string{"Apple pie"}, names(records))
	})

	t.Run("search is case-sensitive", func(t *testing.T) {
		records := testutil.Records(t, testutil.Get(server, "/products?search=apple"))
		assert.Empty(t, records)
	})
}

func TestProductHandler_AddForm(t *testing.T) {
	server := newTestServer(t)

	w := testutil.Get(server, "/product/add")
	require.Equal(t, http.StatusOK, w.Code)

	view := testutil.JSONResponseAs[struct {
		Data dto.EntityView `json:"data"`
	}](t, w).Data
	assert.Equal(t, dto.EntityProduct, view.Entity)
	assert.Nil(t, view.Record)
	assert.Equal(t, "name", view.Fields[0].Name)
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("adds the product and redirects to the list", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/product/add", productForm("Blueberry pie", "12.50", "20"))
		testutil.AssertRedirect(t, w, "/products")

		records := testutil.Records(t, testutil.Get(server, "/products?search=Blueberry"))
		require.Len(t, records, 1)
		assert.EqualValues(t, 11, records[0]["id"])
		assert.Equal(t, "12.50", records[0]["price"])
		assert.EqualValues(t, 20, records[0]["stock"])
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/product/add", productForm("Apple pie", "9.99", "1"))
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)

		assert.Len(t, testutil.Records(t, testutil.Get(server, "/products")), 10)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/product/add", url.Values{"name": {"Plum pie"}})
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Contains(t, w.Body.String(), `"field":"category"`)
	})

	t.Run("rejects values that cannot be coerced", func(t *testing.T) {
		server := newTestServer(t)

		cases := map[string]url.Values{
			"price not a number":   productForm("Plum pie", "cheap", "1"),
			"price too precise":    productForm("Plum pie", "1.999", "1"),
			"price negative":       productForm("Plum pie", "-1", "1"),
			"stock not an integer": productForm("Plum pie", "1.00", "1.5"),
			"stock out of range":   productForm("Plum pie", "1.00", "2147483648"),
		}
		for name, form := range cases {
			t.Run(name, func(t *testing.T) {
				w := testutil.PostForm(server, "/product/add", form)
				testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidationFormat)
			})
		}

		assert.Len(t, testutil.Records(t, testutil.Get(server, "/products")), 10)
	})
}

func TestProductHandler_Edit(t *testing.T) {
	server := newTestServer(t)

	t.Run("shows the product", func(t *testing.T) {
		w := testutil.Get(server, "/product/edit/3")
		require.Equal(t, http.StatusOK, w.Code)

		record := testutil.Record(t, w)
		assert.Equal(t, "Pecan pie", record["name"])
		assert.Equal(t, "14.99", record["price"])
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		testutil.AssertErrorResponse(t, testutil.Get(server, "/product/edit/9999"), http.StatusNotFound, dto.ErrCodeNotFound)
		testutil.AssertErrorResponse(t, testutil.Get(server, "/product/edit/pecan"), http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("update overwrites the fields", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/edit/3", productForm("Pecan tart", "15.25", "7"))
		testutil.AssertRedirect(t, w, "/products")

		record := testutil.Record(t, testutil.Get(server, "/product/edit/3"))
		assert.Equal(t, "Pecan tart", record["name"])
		assert.Equal(t, "Fruit", record["category"])
		assert.Equal(t, "15.25", record["price"])
		assert.EqualValues(t, 7, record["stock"])
	})

	t.Run("update to another product's name is rejected", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/edit/3", productForm("Cherry pie", "1.00", "1"))
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("update of unknown product is not found", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/edit/9999", productForm("Ghost pie", "1.00", "1"))
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	server := newTestServer(t)

	t.Run("deletes an unreferenced product", func(t *testing.T) {
		testutil.AssertRedirect(t, testutil.PostForm(server, "/product/add", productForm("Plum pie", "8.00", "3")), "/products")

		w := testutil.PostForm(server, "/product/delete/11", nil)
		testutil.AssertRedirect(t, w, "/products")

		assert.Empty(t, testutil.Records(t, testutil.Get(server, "/products?search=Plum")))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/delete/9999", nil)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("referenced product is kept", func(t *testing.T) {
		w := testutil.PostForm(server, "/product/delete/1", nil)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)

		assert.Equal(t, http.StatusOK, testutil.Get(server, "/product/edit/1").Code)
	})
}
