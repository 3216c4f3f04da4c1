package debt

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

var repoStub = NewStubDebtRepo()

func setup(t *testing.T) (*ServiceImpl, func()) {
	service := NewService(repoStub)
	return service, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should assign a uid and trim the name", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Debt{Name: "  Car loan  ", Amount: 2500})

		assert.NoError(t, err)
		assert.Equal(t, "Car loan", created.Name)
		assert.NotEmpty(t, created.Uid)
		assert.NotZero(t, created.Id)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Debt{Name: "   ", Amount: 100})

		assert.ErrorIs(t, err, ErrInvalidDebt)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Debt{Name: "Loan", Amount: -1})

		assert.ErrorIs(t, err, ErrInvalidDebt)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should list newest first", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Debt{Name: "First", Amount: 100})
		require.NoError(t, err)
		_, err = service.Create(ctx, Debt{Name: "Second", Amount: 200})
		require.NoError(t, err)

		debts, err := service.List(ctx)

		require.NoError(t, err)
		require.Len(t, debts, 2)
		assert.Equal(t, "Second", debts[0].Name)
		assert.Equal(t, "First", debts[1].Name)
	})

	t.Run("should not list another user's debts", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "u-2"})

		_, err := service.Create(ctx, Debt{Name: "Mine", Amount: 100})
		require.NoError(t, err)

		debts, err := service.List(otherCtx)

		require.NoError(t, err)
		assert.Empty(t, debts)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an owned debt", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		created, err := service.Create(ctx, Debt{Name: "Loan", Amount: 100})
		require.NoError(t, err)

		err = service.Delete(ctx, created.Uid)

		assert.NoError(t, err)
		debts, _ := service.List(ctx)
		assert.Empty(t, debts)
	})

	t.Run("should report not found for a foreign debt", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "u-2"})
		created, err := service.Create(ctx, Debt{Name: "Loan", Amount: 100})
		require.NoError(t, err)

		err = service.Delete(otherCtx, created.Uid)

		assert.ErrorIs(t, err, ErrDebtNotFound)
	})
}
