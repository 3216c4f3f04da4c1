package budget

import (
	"context"
	"os"
	"testing"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pool *pgxpool.Pool

func TestMain(m *testing.M) {
	container, open := test_utils.TestWithDB()
	pool = open()
	code := m.Run()
	pool.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func testAlert(cat category.Category, alertType AlertType) BudgetAlert {
	return BudgetAlert{
		Uid:          uuid.New().String(),
		Category:     cat,
		BudgetGoal:   1000,
		CurrentSpent: 850,
		Percentage:   85,
		Type:         alertType,
		Message:      "You've used 85.0% of your Food budget",
		Month:        "2024-03",
		Year:         2024,
	}
}

func TestAlertRepoImpl_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepo(pool)
	userId := test_utils.CreateTestUser(t, pool, "alert_insert_user")

	// when
	created, isNew, err := repo.InsertIfAbsent(ctx, userId, testAlert(category.Food, AlertWarning))

	// then
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotZero(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	// inserting the same tuple again is a no-op
	_, isNew, err = repo.InsertIfAbsent(ctx, userId, testAlert(category.Food, AlertWarning))
	require.NoError(t, err)
	assert.False(t, isNew)

	// a different alert type for the same category is a new tuple
	_, isNew, err = repo.InsertIfAbsent(ctx, userId, testAlert(category.Food, AlertExceeded))
	require.NoError(t, err)
	assert.True(t, isNew)

	alerts, err := repo.FindForMonth(ctx, userId, "2024-03", 2024)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestAlertRepoImpl_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepo(pool)
	userId := test_utils.CreateTestUser(t, pool, "alert_read_user")
	otherUserId := test_utils.CreateTestUser(t, pool, "alert_read_other_user")

	created, _, err := repo.InsertIfAbsent(ctx, userId, testAlert(category.Travel, AlertWarning))
	require.NoError(t, err)

	// another user cannot mark it
	_, err = repo.MarkRead(ctx, otherUserId, created.Uid)
	assert.ErrorIs(t, err, ErrAlertNotFound)

	// the owner can
	marked, err := repo.MarkRead(ctx, userId, created.Uid)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	isRead := true
	alerts, err := repo.Find(ctx, userId, &isRead, 50)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, created.Uid, alerts[0].Uid)
}

func TestAlertRepoImpl_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepo(pool)
	userId := test_utils.CreateTestUser(t, pool, "alert_find_user")

	for _, cat := range []category.Category{category.Food, category.Travel, category.Shopping} {
		_, _, err := repo.InsertIfAbsent(ctx, userId, testAlert(cat, AlertWarning))
		require.NoError(t, err)
	}

	// when limited to 2
	alerts, err := repo.Find(ctx, userId, nil, 2)

	// then
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestGoalRepoImpl_UpsertGoals(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepo(pool)
	userId := test_utils.CreateTestUser(t, pool, "goal_upsert_user")

	// when
	err := repo.UpsertGoals(ctx, userId, []CategoryGoal{
		{Category: category.Food, Goal: 1000},
		{Category: category.Travel, Goal: 500},
	})
	require.NoError(t, err)
	err = repo.UpsertGoals(ctx, userId, []CategoryGoal{{Category: category.Food, Goal: 1500}})
	require.NoError(t, err)

	// then
	goals, err := repo.ListGoals(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, []CategoryGoal{
		{Category: category.Food, Goal: 1500},
		{Category: category.Travel, Goal: 500},
	}, goals)
}
