package budget

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type GoalRepo interface {
	// UpsertGoals stores the batch atomically: either every goal is written
	// (overwriting existing ones) or none is.
	UpsertGoals(ctx context.Context, userId int, goals []CategoryGoal) error
	ListGoals(ctx context.Context, userId int) ([]CategoryGoal, error)
}

type GoalRepoImpl struct {
	db *pgxpool.Pool
}

func NewGoalRepo(db *pgxpool.Pool) *GoalRepoImpl {
	return &GoalRepoImpl{db: db}
}

func (r *GoalRepoImpl) UpsertGoals(ctx context.Context, userId int, goals []CategoryGoal) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO category_goal (user_id, category, goal)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id, category) DO UPDATE SET goal = EXCLUDED.goal`
	for _, goal := range goals {
		if _, err := tx.Exec(ctx, query, userId, string(goal.Category), goal.Goal); err != nil {
			err := fmt.Errorf("could not upsert goal for %s: %w", goal.Category, err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *GoalRepoImpl) ListGoals(ctx context.Context, userId int) ([]CategoryGoal, error) {
	query := `SELECT category, goal FROM category_goal WHERE user_id = $1 ORDER BY category`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var goals []CategoryGoal
	for rows.Next() {
		var cat string
		var goal CategoryGoal
		if err := rows.Scan(&cat, &goal.Goal); err != nil {
			err := fmt.Errorf("could not scan goal: %w", err)
			log.Error(err)
			return nil, err
		}
		goal.Category = category.Category(cat)
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return goals, nil
}
