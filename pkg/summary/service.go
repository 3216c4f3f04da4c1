package summary

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
	"golang.org/x/sync/errgroup"
)

// recentCount is how many of the latest transactions the overview carries.
const recentCount = 3

// Overview is the landing-page aggregate: lifetime income and expense totals,
// the combined budget across all category goals, and the latest transactions.
type Overview struct {
	TotalTransactions int
	TotalIncome       float64
	TotalExpenses     float64
	TotalBudget       float64
	Savings           float64
	Recent            []transaction.Transaction
}

// TransactionSource is the slice of the transaction repository the overview
// needs. Satisfied by transaction.Repository.
type TransactionSource interface {
	Summarize(ctx context.Context, userId int) (transaction.Summary, error)
	Recent(ctx context.Context, userId int, limit int) ([]transaction.Transaction, error)
}

// GoalSource is satisfied by budget.GoalRepo.
type GoalSource interface {
	ListGoals(ctx context.Context, userId int) ([]budget.CategoryGoal, error)
}

type Service interface {
	GetOverview(ctx context.Context) (Overview, error)
}

type ServiceImpl struct {
	transactions TransactionSource
	goals        GoalSource
}

func NewService(transactions TransactionSource, goals GoalSource) *ServiceImpl {
	return &ServiceImpl{transactions: transactions, goals: goals}
}

// GetOverview fans out the three reads concurrently. Savings is budget
// headroom, the combined goals minus total expenses, and can go negative.
func (s *ServiceImpl) GetOverview(ctx context.Context) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var totals transaction.Summary
	var recent []transaction.Transaction
	var goals []budget.CategoryGoal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.transactions.Summarize(gctx, userId)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.transactions.Recent(gctx, userId, recentCount)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.ListGoals(gctx, userId)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	totalBudget := 0.0
	for _, goal := range goals {
		totalBudget += goal.Goal
	}

	return Overview{
		TotalTransactions: totals.TotalTransactions,
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expense,
		TotalBudget:       totalBudget,
		Savings:           totalBudget - totals.Expense,
		Recent:            recent,
	}, nil
}
