package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/internal/interfaces/http/handler"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerForm(email, password, phone string) url.Values {
	return url.Values{
		"first_name":        {"Ned"},
		"last_name":         {"Flanders"},
		"email":             {email},
		"password":          {password},
		"phone":             {phone},
		"registration_date": {"2025-05-01"},
	}
}

// newCustomerServer also returns the store so tests can read stored passwords
func newCustomerServer(t *testing.T) (*gin.Engine, *persistence.Database) {
	t.Helper()

	db := testutil.NewSQLiteDatabase(t)
	testutil.SeedSampleData(t, db)
	return newEngine(t, db, handler.NewSystemHandler(db)), db
}

func storedPassword(t *testing.T, db *persistence.Database, id int64) string {
	t.Helper()

	customer, err := persistence.NewGormCustomerRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return customer.Password
}

func TestCustomerHandler_List(t *testing.T) {
	server := newTestServer(t)

	records := testutil.Records(t, testutil.Get(server, "/customers"))
	require.Len(t, records, 10)
	assert.Equal(t, "John", records[0]["first_name"])
	assert.Equal(t, "2024-01-15", records[0]["registration_date"])

	t.Run("passwords are never sent", func(t *testing.T) {
		for _, record := range records {
			assert.NotContains(t, record, "password")
		}
		assert.NotContains(t, testutil.Record(t, testutil.Get(server, "/customer/edit/1")), "password")
	})

	t.Run("search matches first or last name", func(t *testing.T) {
		records := testutil.Records(t, testutil.Get(server, "/customers?search=Stark"))
		require.Len(t, records, 1)
		assert.EqualValues(t, 10, records[0]["id"])

		records = testutil.Records(t, testutil.Get(server, "/customers?search=Ma"))
		assert.Len(t, records, 1) // Matt Watts
	})

	t.Run("search is case-sensitive", func(t *testing.T) {
		assert.Empty(t, testutil.Records(t, testutil.Get(server, "/customers?search=stark")))
	})
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("adds the customer", func(t *testing.T) {
		server, db := newCustomerServer(t)

		w := testutil.PostForm(server, "/customer/add", customerForm("ned@example.com", "okilydokily", "555-0101"))
		testutil.AssertRedirect(t, w, "/customers")

		record := testutil.Record(t, testutil.Get(server, "/customer/edit/11"))
		assert.Equal(t, "Flanders", record["last_name"])
		assert.Equal(t, "2025-05-01", record["registration_date"])
		assert.Equal(t, "okilydokily", storedPassword(t, db, 11))
	})

	t.Run("blank registration date means today", func(t *testing.T) {
		server := newTestServer(t)

		form := customerForm("ned@example.com", "okilydokily", "555-0101")
		form.Set("registration_date", "")
		testutil.AssertRedirect(t, testutil.PostForm(server, "/customer/add", form), "/customers")

		record := testutil.Record(t, testutil.Get(server, "/customer/edit/11"))
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, record["registration_date"])
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		server := newTestServer(t)

		form := customerForm("ned@example.com", "okilydokily", "555-0101")
		form.Set("registration_date", "05/01/2025")
		w := testutil.PostForm(server, "/customer/add", form)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidationFormat)
		assert.Contains(t, w.Body.String(), `"field":"registration_date"`)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/customer/add", customerForm("johndoe@example.com", "secret", "555-0101"))
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("email is free text", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/customer/add", customerForm("ned at the leftorium", "secret", "555-0101"))
		testutil.AssertRedirect(t, w, "/customers")
	})

	t.Run("rejects blank email", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/customer/add", customerForm("   ", "secret", "555-0101"))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Contains(t, w.Body.String(), `"field":"email"`)
	})

	t.Run("requires a password", func(t *testing.T) {
		server := newTestServer(t)

		w := testutil.PostForm(server, "/customer/add", customerForm("ned@example.com", "", "555-0101"))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
		assert.Len(t, testutil.Records(t, testutil.Get(server, "/customers")), 10)
	})
}

func TestCustomerHandler_Update(t *testing.T) {
	server, db := newCustomerServer(t)

	t.Run("blank password keeps the stored one", func(t *testing.T) {
		w := testutil.PostForm(server, "/customer/edit/1", customerForm("john@example.com", "", "555-1234"))
		testutil.AssertRedirect(t, w, "/customers")

		record := testutil.Record(t, testutil.Get(server, "/customer/edit/1"))
		assert.Equal(t, "Ned", record["first_name"])
		assert.Equal(t, "john@example.com", record["email"])
		assert.Equal(t, "password1", storedPassword(t, db, 1))
	})

	t.Run("new password replaces the stored one", func(t *testing.T) {
		w := testutil.PostForm(server, "/customer/edit/1", customerForm("john@example.com", "hunter2", "555-1234"))
		testutil.AssertRedirect(t, w, "/customers")

		assert.Equal(t, "hunter2", storedPassword(t, db, 1))
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		w := testutil.PostForm(server, "/customer/edit/77", customerForm("x@example.com", "", "555-7777"))
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestCustomerHandler_Delete(t *testing.T) {
	server := newTestServer(t)

	t.Run("customer with orders is kept", func(t *testing.T) {
		w := testutil.PostForm(server, "/customer/delete/1", nil)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConstraintViolation)
	})

	t.Run("new customer is removed", func(t *testing.T) {
		testutil.AssertRedirect(t, testutil.PostForm(server, "/customer/add", customerForm("ned@example.com", "pw", "555-0101")), "/customers")

		testutil.AssertRedirect(t, testutil.PostForm(server, "/customer/delete/11", nil), "/customers")
		testutil.AssertErrorResponse(t, testutil.Get(server, "/customer/edit/11"), http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		testutil.AssertErrorResponse(t, testutil.PostForm(server, "/customer/delete/11", nil), http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
