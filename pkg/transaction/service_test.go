package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

var repoStub = NewStubRepository()

var clock = &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(repoStub, bus, clock)
	return service, bus, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should default category and date", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Transaction{Title: "Coffee", Amount: -3.5, PaymentMethod: Cash})

		// then
		assert.NoError(t, err)
		assert.Equal(t, category.Others, created.Category)
		assert.Equal(t, clock.Now(), created.Date)
		assert.NotEmpty(t, created.Uid)
	})

	t.Run("should publish transaction.created for expenses", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		var received []event_bus.TransactionCreatedData
		unsubscribe := event_bus.SubscribeTyped(bus, event_bus.TransactionCreated,
			func(e event_bus.EventT[event_bus.TransactionCreatedData]) error {
				received = append(received, e.Data)
				return nil
			})
		defer unsubscribe()

		// when
		created, err := service.Create(ctx, Transaction{Title: "Groceries", Amount: -120, Category: category.Food, PaymentMethod: UPI})
		require.NoError(t, err)

		// then
		require.Len(t, received, 1)
		assert.Equal(t, created.Uid, received[0].TransactionUid)
		assert.Equal(t, "Food", received[0].Category)
		assert.Equal(t, -120.0, received[0].Amount)
	})

	t.Run("should not publish for income", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		published := 0
		unsubscribe := bus.Subscribe(event_bus.TransactionCreated, func(e event_bus.Event) error {
			published++
			return nil
		})
		defer unsubscribe()

		// when
		_, err := service.Create(ctx, Transaction{Title: "Salary", Amount: 5000, Category: category.Income, PaymentMethod: NetBanking})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0, published)
	})

	t.Run("should succeed even when a subscriber fails", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		unsubscribe := bus.Subscribe(event_bus.TransactionCreated, func(e event_bus.Event) error {
			return errors.New("storage unavailable")
		})
		defer unsubscribe()

		// when
		created, err := service.Create(ctx, Transaction{Title: "Dinner", Amount: -45, Category: category.Food, PaymentMethod: Cash})

		// then
		assert.NoError(t, err)
		stored, err := service.List(ctx, Filter{})
		assert.NoError(t, err)
		assert.Len(t, stored.Transactions, 1)
		assert.Equal(t, created.Uid, stored.Transactions[0].Uid)
	})

	t.Run("should succeed even when a subscriber panics", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		unsubscribe := bus.Subscribe(event_bus.TransactionCreated, func(e event_bus.Event) error {
			panic("boom")
		})
		defer unsubscribe()

		// when
		_, err := service.Create(ctx, Transaction{Title: "Taxi", Amount: -20, Category: category.Travel, PaymentMethod: Cash})

		// then
		assert.NoError(t, err)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), Transaction{Title: "Coffee", Amount: -3, PaymentMethod: Cash})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should paginate newest first", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// given
		for i := 0; i < 25; i++ {
			_, err := service.Create(ctx, Transaction{
				Title:         "Item",
				Amount:        -1,
				PaymentMethod: Cash,
				Date:          clock.Now().Add(time.Duration(i) * time.Hour),
			})
			require.NoError(t, err)
		}

		// when
		page, err := service.List(ctx, Filter{Page: 2, Limit: 10})

		// then
		assert.NoError(t, err)
		assert.Len(t, page.Transactions, 10)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasMore)

		last, err := service.List(ctx, Filter{Page: 3, Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, last.Transactions, 5)
		assert.False(t, last.HasMore)
	})

	t.Run("should filter by search term", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Create(ctx, Transaction{Title: "Grocery run", Amount: -50, PaymentMethod: Cash})
		_, _ = service.Create(ctx, Transaction{Title: "Movie", Note: "grocery snacks", Amount: -15, PaymentMethod: Cash})
		_, _ = service.Create(ctx, Transaction{Title: "Fuel", Amount: -30, PaymentMethod: Cash, Tags: []string{"car"}})

		// when
		page, err := service.List(ctx, Filter{Search: "grocery"})

		// then
		assert.NoError(t, err)
		assert.Len(t, page.Transactions, 2)
	})

	t.Run("should never leak another user's transactions", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// given
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "u-2"})
		_, _ = service.Create(ctx, Transaction{Title: "Mine", Amount: -10, PaymentMethod: Cash})
		_, _ = service.Create(otherCtx, Transaction{Title: "Theirs", Amount: -10, PaymentMethod: Cash})

		// when
		page, err := service.List(otherCtx, Filter{})

		// then
		assert.NoError(t, err)
		assert.Len(t, page.Transactions, 1)
		assert.Equal(t, "Theirs", page.Transactions[0].Title)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should not delete a foreign transaction", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, Transaction{Title: "Mine", Amount: -10, PaymentMethod: Cash})
		require.NoError(t, err)

		// when
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "u-2"})
		err = service.Delete(otherCtx, created.Uid)

		// then
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("should delete an owned transaction", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Transaction{Title: "Mine", Amount: -10, PaymentMethod: Cash})
		require.NoError(t, err)

		assert.NoError(t, service.Delete(ctx, created.Uid))

		page, err := service.List(ctx, Filter{})
		assert.NoError(t, err)
		assert.Empty(t, page.Transactions)
	})
}

func TestServiceImpl_Summarize(t *testing.T) {
	t.Run("should split income and expenses", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Create(ctx, Transaction{Title: "Salary", Amount: 3000, PaymentMethod: NetBanking})
		_, _ = service.Create(ctx, Transaction{Title: "Rent", Amount: -1200, Category: category.Rent, PaymentMethod: NetBanking})
		_, _ = service.Create(ctx, Transaction{Title: "Food", Amount: -300, Category: category.Food, PaymentMethod: Cash})

		// when
		summary, err := service.Summarize(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, summary.TotalTransactions)
		assert.Equal(t, 3000.0, summary.Income)
		assert.Equal(t, 1500.0, summary.Expense)
		assert.Equal(t, 1500.0, summary.Net)
	})
}
