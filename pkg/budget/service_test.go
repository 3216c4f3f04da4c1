package budget

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "test_user"})

var otherCtx = user.WithUser(context.Background(), user.User{Id: 2, Uid: "u-2", Username: "other_user"})

var goalStub = NewStubGoalRepo()

var alertStub = NewStubAlertRepo()

var spendStub = transaction.NewStubRepository()

var clock = &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (*ServiceImpl, func()) {
	service := NewService(goalStub, alertStub, spendStub, clock)
	return service, func() {
		t.Log("Teardown after test")
		goalStub.Cleanup()
		alertStub.Cleanup()
		spendStub.Cleanup()
	}
}

// recordExpense stores an expense in the current month and delivers the
// follow-up event the way the transaction service does.
func recordExpense(t *testing.T, service *ServiceImpl, eventCtx context.Context, userId int, cat category.Category, amount float64) {
	t.Helper()

	bus := event_bus.NewEventBus()
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.TransactionCreated, service.HandleTransactionCreated)
	defer unsubscribe()

	uid := fmt.Sprintf("t-%d", time.Now().UnixNano())
	_, err := spendStub.Store(eventCtx, userId, transaction.Transaction{
		Uid:      uid,
		Title:    "expense",
		Amount:   -amount,
		Category: cat,
		Date:     clock.Now(),
	})
	require.NoError(t, err)

	err = bus.Publish(event_bus.NewEvent(eventCtx, event_bus.TransactionCreated, event_bus.TransactionCreatedData{
		TransactionUid: uid,
		Category:       string(cat),
		Amount:         -amount,
		Date:           clock.Now(),
	}))
	require.NoError(t, err)
}

func TestServiceImpl_SetCategoryGoals(t *testing.T) {
	t.Run("should upsert and overwrite goals", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		err := service.SetCategoryGoals(ctx, []CategoryGoal{
			{Category: category.Food, Goal: 1000},
			{Category: category.Travel, Goal: 500},
		})
		require.NoError(t, err)
		err = service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 2000}})
		require.NoError(t, err)

		// then
		goals, err := service.GetCategoryGoals(ctx)
		require.NoError(t, err)
		assert.Equal(t, []CategoryGoal{
			{Category: category.Food, Goal: 2000},
			{Category: category.Travel, Goal: 500},
		}, goals)
	})

	t.Run("should reject the whole batch on an unknown category", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		err := service.SetCategoryGoals(ctx, []CategoryGoal{
			{Category: category.Food, Goal: 1000},
			{Category: "Groceries", Goal: 500},
		})

		// then
		assert.ErrorIs(t, err, ErrInvalidGoal)
		goals, _ := service.GetCategoryGoals(ctx)
		assert.Empty(t, goals)
	})

	t.Run("should reject a negative goal", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		err := service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: -1}})

		assert.ErrorIs(t, err, ErrInvalidGoal)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		err := service.SetCategoryGoals(context.Background(), []CategoryGoal{{Category: category.Food, Goal: 100}})

		assert.Error(t, err)
	})
}

func TestServiceImpl_HandleTransactionCreated(t *testing.T) {
	t.Run("should create a warning alert when spend crosses 80 percent", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		// when
		recordExpense(t, service, ctx, 1, category.Food, 850)

		// then
		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertWarning, alerts[0].Type)
		assert.Equal(t, "You've used 85.0% of your Food budget", alerts[0].Message)
		assert.Equal(t, "2024-03", alerts[0].Month)
		assert.Equal(t, 2024, alerts[0].Year)
		assert.False(t, alerts[0].IsRead)
	})

	t.Run("should not duplicate an alert for repeated expenses", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		// when
		recordExpense(t, service, ctx, 1, category.Food, 850)
		recordExpense(t, service, ctx, 1, category.Food, 10)
		recordExpense(t, service, ctx, 1, category.Food, 10)

		// then
		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, alerts, 1)
	})

	t.Run("should keep the warning snapshot when the goal is later exceeded", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		// when
		recordExpense(t, service, ctx, 1, category.Food, 850)
		recordExpense(t, service, ctx, 1, category.Food, 650)

		// then both threshold crossings are kept as independent alerts
		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		byType := map[AlertType]BudgetAlert{}
		for _, alert := range alerts {
			byType[alert.Type] = alert
		}
		assert.Equal(t, 850.0, byType[AlertWarning].CurrentSpent)
		assert.Equal(t, 85.0, byType[AlertWarning].Percentage)
		assert.Equal(t, 1500.0, byType[AlertExceeded].CurrentSpent)
		assert.Equal(t, 100.0, byType[AlertExceeded].Percentage)
		assert.Equal(t, "You've exceeded your Food budget by ₹500", byType[AlertExceeded].Message)
	})

	t.Run("should ignore income", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Income, Goal: 100}}))

		err := service.HandleTransactionCreated(publishCapture(t, ctx, event_bus.TransactionCreatedData{
			TransactionUid: "t-income",
			Category:       string(category.Income),
			Amount:         5000,
			Date:           clock.Now(),
		}))
		require.NoError(t, err)

		alerts, _ := service.GetAlerts(ctx, nil)
		assert.Empty(t, alerts)
	})

	t.Run("should skip categories without a goal", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when no goal is set for Travel
		recordExpense(t, service, ctx, 1, category.Travel, 9999)

		// then
		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("should keep alerts scoped to their user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))
		require.NoError(t, service.SetCategoryGoals(otherCtx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		// when only the first user overspends
		recordExpense(t, service, ctx, 1, category.Food, 900)

		// then
		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, alerts, 1)
		otherAlerts, err := service.GetAlerts(otherCtx, nil)
		require.NoError(t, err)
		assert.Empty(t, otherAlerts)
	})
}

func TestServiceImpl_GetBudgetTracking(t *testing.T) {
	t.Run("should recompute live state while alerts keep their snapshot", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		recordExpense(t, service, ctx, 1, category.Food, 850)
		recordExpense(t, service, ctx, 1, category.Food, 100)

		// when
		report, err := service.GetBudgetTracking(ctx)
		require.NoError(t, err)

		// then the row reflects the full 950 spent
		require.Len(t, report.Rows, 1)
		row := report.Rows[0]
		assert.Equal(t, category.Food, row.Category)
		assert.Equal(t, 950.0, row.CurrentSpent)
		assert.Equal(t, 50.0, row.Remaining)
		assert.Equal(t, 95.0, row.Percentage)
		assert.Equal(t, AlertWarning, row.AlertType)
		assert.Equal(t, "You've used 95.0% of your Food budget", row.Message)

		// and the persisted alert still shows the state at the crossing
		require.Len(t, report.Alerts, 1)
		assert.Equal(t, 850.0, report.Alerts[0].CurrentSpent)
		assert.Equal(t, "2024-03", report.Month)
		assert.Equal(t, 2024, report.Year)
	})

	t.Run("should include goals with no spend", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Rent, Goal: 15000}}))

		report, err := service.GetBudgetTracking(ctx)
		require.NoError(t, err)

		require.Len(t, report.Rows, 1)
		assert.Equal(t, 0.0, report.Rows[0].CurrentSpent)
		assert.Equal(t, 15000.0, report.Rows[0].Remaining)
		assert.Equal(t, AlertNone, report.Rows[0].AlertType)
	})

	t.Run("should ignore spend from previous months", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))

		_, err := spendStub.Store(ctx, 1, transaction.Transaction{
			Uid:      "t-feb",
			Title:    "old expense",
			Amount:   -900,
			Category: category.Food,
			Date:     time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		report, err := service.GetBudgetTracking(ctx)
		require.NoError(t, err)

		require.Len(t, report.Rows, 1)
		assert.Equal(t, 0.0, report.Rows[0].CurrentSpent)
	})
}

func TestServiceImpl_Alerts(t *testing.T) {
	t.Run("should filter by read state and mark as read", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{
			{Category: category.Food, Goal: 1000},
			{Category: category.Travel, Goal: 500},
		}))
		recordExpense(t, service, ctx, 1, category.Food, 900)
		recordExpense(t, service, ctx, 1, category.Travel, 450)

		unread := false
		alerts, err := service.GetAlerts(ctx, &unread)
		require.NoError(t, err)
		require.Len(t, alerts, 2)

		// when
		marked, err := service.MarkAlertAsRead(ctx, alerts[0].Uid)
		require.NoError(t, err)
		assert.True(t, marked.IsRead)

		// then
		remaining, err := service.GetAlerts(ctx, &unread)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
		read := true
		readAlerts, err := service.GetAlerts(ctx, &read)
		require.NoError(t, err)
		assert.Len(t, readAlerts, 1)
	})

	t.Run("should not mark another user's alert", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		require.NoError(t, service.SetCategoryGoals(ctx, []CategoryGoal{{Category: category.Food, Goal: 1000}}))
		recordExpense(t, service, ctx, 1, category.Food, 900)

		alerts, err := service.GetAlerts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, alerts, 1)

		// when the other user tries to mark it
		_, err = service.MarkAlertAsRead(otherCtx, alerts[0].Uid)

		// then
		assert.ErrorIs(t, err, ErrAlertNotFound)
	})
}

// publishCapture routes one event through a throwaway bus and hands the typed
// envelope back, so subscriber methods can be called directly in tests.
func publishCapture(t *testing.T, eventCtx context.Context, data event_bus.TransactionCreatedData) event_bus.EventT[event_bus.TransactionCreatedData] {
	t.Helper()

	bus := event_bus.NewEventBus()
	var captured event_bus.EventT[event_bus.TransactionCreatedData]
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.TransactionCreated,
		func(e event_bus.EventT[event_bus.TransactionCreatedData]) error {
			captured = e
			return nil
		})
	defer unsubscribe()
	require.NoError(t, bus.Publish(event_bus.NewEvent(eventCtx, event_bus.TransactionCreated, data)))
	return captured
}
