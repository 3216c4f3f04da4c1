package budget

import (
	"context"
	"sort"

	"github.com/fintrack/fintrack/pkg/category"
)

type StubGoalRepo struct {
	data map[int]map[category.Category]float64
}

func NewStubGoalRepo() *StubGoalRepo {
	return &StubGoalRepo{data: map[int]map[category.Category]float64{}}
}

func (s *StubGoalRepo) UpsertGoals(ctx context.Context, userId int, goals []CategoryGoal) error {
	if s.data[userId] == nil {
		s.data[userId] = map[category.Category]float64{}
	}
	for _, goal := range goals {
		s.data[userId][goal.Category] = goal.Goal
	}
	return nil
}

func (s *StubGoalRepo) ListGoals(ctx context.Context, userId int) ([]CategoryGoal, error) {
	goals := make([]CategoryGoal, 0, len(s.data[userId]))
	for cat, goal := range s.data[userId] {
		goals = append(goals, CategoryGoal{Category: cat, Goal: goal})
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].Category < goals[j].Category
	})
	return goals, nil
}

func (s *StubGoalRepo) Cleanup() {
	s.data = map[int]map[category.Category]float64{}
}
