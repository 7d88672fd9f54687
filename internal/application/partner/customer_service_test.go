package partner

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newCustomerService(t *testing.T, hasher auth.PasswordHasher) *CustomerService {
	t.Helper()

	db := testutil.NewSQLiteDatabase(t)
	testutil.SeedSampleData(t, db)
	return NewCustomerService(persistence.NewGormCustomerRepository(db), hasher)
}

func newCustomer() CustomerCommand {
	return CustomerCommand{
		FirstName:        "Ned",
		LastName:         "Flanders",
		Email:            "ned@example.com",
		Password:         "okilydokily",
		Phone:            "555-3226",
		RegistrationDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t, auth.PlaintextHasher{})

	t.Run("registers customer", func(t *testing.T) {
		created, err := svc.Create(ctx, newCustomer())
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, "2025-04-01", created.RegistrationDate)
		assert.Equal(t, "okilydokily", created.Password)

		listed, err := svc.List(ctx, "Flan")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, created.ID, listed[0].ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		cmd := newCustomer()
		cmd.Email = "johndoe@example.com"
		cmd.Phone = "555-0101"
		_, err := svc.Create(ctx, cmd)
		assert.True(t, shared.IsConstraintViolation(err))
	})

	t.Run("duplicate phone", func(t *testing.T) {
		cmd := newCustomer()
		cmd.Email = "other@example.com"
		cmd.Phone = "555-1234"
		_, err := svc.Create(ctx, cmd)
		assert.True(t, shared.IsConstraintViolation(err))
	})

	t.Run("password required", func(t *testing.T) {
		cmd := newCustomer()
		cmd.Email = "nopass@example.com"
		cmd.Phone = "555-0102"
		cmd.Password = ""
		_, err := svc.Create(ctx, cmd)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t, auth.PlaintextHasher{})

	t.Run("blank password keeps stored one", func(t *testing.T) {
		cmd := CustomerCommand{
			FirstName:        "Johnny",
			LastName:         "Doe",
			Email:            "johndoe@example.com",
			Phone:            "555-1234",
			RegistrationDate: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		}
		updated, err := svc.Update(ctx, 1, cmd)
		require.NoError(t, err)
		assert.Equal(t, "Johnny", updated.FirstName)
		assert.Equal(t, "password1", updated.Password)

		fetched, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "password1", fetched.Password)
		assert.Equal(t, "2024-01-16", fetched.RegistrationDate)
	})

	t.Run("new password replaces stored one", func(t *testing.T) {
		fetched, err := svc.GetByID(ctx, 2)
		require.NoError(t, err)

		cmd := CustomerCommand{
			FirstName:        fetched.FirstName,
			LastName:         fetched.LastName,
			Email:            fetched.Email,
			Password:         "s3cret",
			Phone:            fetched.Phone,
			RegistrationDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		}
		updated, err := svc.Update(ctx, 2, cmd)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", updated.Password)
	})

	t.Run("email taken by another customer", func(t *testing.T) {
		fetched, err := svc.GetByID(ctx, 3)
		require.NoError(t, err)

		cmd := CustomerCommand{
			FirstName:        fetched.FirstName,
			LastName:         fetched.LastName,
			Email:            "janesmith@example.com",
			Phone:            fetched.Phone,
			RegistrationDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		}
		_, err = svc.Update(ctx, 3, cmd)
		assert.True(t, shared.IsConstraintViolation(err))
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, newCustomer())
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t, auth.PlaintextHasher{})

	assert.True(t, shared.IsConstraintViolation(svc.Delete(ctx, 1)), "customer 1 has orders")
	assert.True(t, shared.IsNotFound(svc.Delete(ctx, 999)))

	created, err := svc.Create(ctx, newCustomer())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestCustomerService_ConcurrentCreateSameEmail(t *testing.T) {
	const callers = 8

	db := testutil.NewSQLiteFileDatabase(t, callers)
	svc := NewCustomerService(persistence.NewGormCustomerRepository(db), auth.PlaintextHasher{})
	ctx := context.Background()

	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd := newCustomer()
			cmd.Phone = fmt.Sprintf("555-01%02d", i)
			_, errs[i] = svc.Create(ctx, cmd)
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, shared.IsConstraintViolation(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, created)

	listed, err := svc.List(ctx, "Flanders")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCustomerService_HashesPasswords(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := newCustomerService(t, hasher)

	created, err := svc.Create(ctx, newCustomer())
	require.NoError(t, err)
	assert.NotEqual(t, "okilydokily", created.Password)
	assert.True(t, hasher.Verify(created.Password, "okilydokily"))
}

func TestCustomerService_SearchIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t, auth.PlaintextHasher{})

	matched, err := svc.List(ctx, "Stark")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Eddard", matched[0].FirstName)

	none, err := svc.List(ctx, "stark")
	require.NoError(t, err)
	assert.Empty(t, none)
}
