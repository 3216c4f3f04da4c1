package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidGoal = errors.New("invalid category or goal")

// maxAlertsListed caps the notification-center listing.
const maxAlertsListed = 50

// SpendProvider delivers the monthly expense aggregation the tracking and
// alert paths are built on. Satisfied by transaction.Repository.
type SpendProvider interface {
	SumExpensesByCategory(ctx context.Context, userId int, from, to time.Time) (map[category.Category]float64, error)
	SumExpensesForCategory(ctx context.Context, userId int, cat category.Category, from, to time.Time) (float64, error)
}

type Service interface {
	SetCategoryGoals(ctx context.Context, goals []CategoryGoal) error
	GetCategoryGoals(ctx context.Context) ([]CategoryGoal, error)
	GetBudgetTracking(ctx context.Context) (TrackingReport, error)
	GetAlerts(ctx context.Context, isRead *bool) ([]BudgetAlert, error)
	MarkAlertAsRead(ctx context.Context, uid string) (BudgetAlert, error)
}

type ServiceImpl struct {
	goalRepo  GoalRepo
	alertRepo AlertRepo
	spend     SpendProvider
	clock     utils.Clock
}

func NewService(goalRepo GoalRepo, alertRepo AlertRepo, spend SpendProvider, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		goalRepo:  goalRepo,
		alertRepo: alertRepo,
		spend:     spend,
		clock:     clock,
	}
}

// SetCategoryGoals validates and upserts the batch. A single invalid entry
// rejects the whole batch, nothing is written.
func (s *ServiceImpl) SetCategoryGoals(ctx context.Context, goals []CategoryGoal) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	for _, goal := range goals {
		if _, err := category.Parse(string(goal.Category)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGoal, err)
		}
		if goal.Goal < 0 || math.IsNaN(goal.Goal) {
			return fmt.Errorf("%w: goal for %s must be a non-negative number", ErrInvalidGoal, goal.Category)
		}
	}

	return s.goalRepo.UpsertGoals(ctx, userId, goals)
}

func (s *ServiceImpl) GetCategoryGoals(ctx context.Context) ([]CategoryGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.goalRepo.ListGoals(ctx, userId)
}

// GetBudgetTracking builds the live dashboard view. Alert state in the rows
// is recomputed from current spend on every call, independent of the
// snapshots persisted when thresholds were first crossed; the persisted
// alerts for the month ride along for the notification center.
func (s *ServiceImpl) GetBudgetTracking(ctx context.Context) (TrackingReport, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return TrackingReport{}, fmt.Errorf("failed to get current user: %w", err)
	}

	now := s.clock.Now()
	from, to := monthWindow(now)
	month := monthKey(now)

	var goals []CategoryGoal
	var spendByCategory map[category.Category]float64
	var alerts []BudgetAlert

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.ListGoals(gctx, currentUser.Id)
		return err
	})
	g.Go(func() error {
		var err error
		spendByCategory, err = s.spend.SumExpensesByCategory(gctx, currentUser.Id, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.alertRepo.FindForMonth(gctx, currentUser.Id, month, now.Year())
		return err
	})
	if err := g.Wait(); err != nil {
		return TrackingReport{}, err
	}

	rows := make([]TrackingRow, 0, len(goals))
	for _, goal := range goals {
		spent := spendByCategory[goal.Category]
		evaluation := Evaluate(goal.Category, currencyOf(currentUser), goal.Goal, spent)
		rows = append(rows, TrackingRow{
			Category:     goal.Category,
			BudgetGoal:   goal.Goal,
			CurrentSpent: spent,
			Remaining:    goal.Goal - spent,
			Percentage:   evaluation.Percentage,
			AlertType:    evaluation.Type,
			Message:      evaluation.Message,
		})
	}

	return TrackingReport{
		Rows:   rows,
		Month:  month,
		Year:   now.Year(),
		Alerts: alerts,
	}, nil
}

func (s *ServiceImpl) GetAlerts(ctx context.Context, isRead *bool) ([]BudgetAlert, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.alertRepo.Find(ctx, userId, isRead, maxAlertsListed)
}

func (s *ServiceImpl) MarkAlertAsRead(ctx context.Context, uid string) (BudgetAlert, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetAlert{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.alertRepo.MarkRead(ctx, userId, uid)
}

// HandleTransactionCreated is the event-bus subscriber closing the loop from
// an expense write to a persisted alert. Only the affected category is
// re-aggregated. Errors bubble up to the bus, which logs them; they never
// reach the transaction writer.
func (s *ServiceImpl) HandleTransactionCreated(e event_bus.EventT[event_bus.TransactionCreatedData]) error {
	ctx := e.Context()
	if e.Data.Amount >= 0 {
		return nil
	}

	cat, err := category.Parse(e.Data.Category)
	if err != nil {
		return err
	}

	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	goals, err := s.goalRepo.ListGoals(ctx, currentUser.Id)
	if err != nil {
		return err
	}
	goal, ok := findGoal(goals, cat)
	if !ok || goal.Goal <= 0 {
		log.Tracef("no goal set for category %s, skipping alert evaluation", cat)
		return nil
	}

	now := s.clock.Now()
	from, to := monthWindow(now)
	spent, err := s.spend.SumExpensesForCategory(ctx, currentUser.Id, cat, from, to)
	if err != nil {
		return err
	}

	evaluation := Evaluate(cat, currencyOf(currentUser), goal.Goal, spent)
	if evaluation.Type == AlertNone {
		return nil
	}

	created, isNew, err := s.alertRepo.InsertIfAbsent(ctx, currentUser.Id, BudgetAlert{
		Uid:          uuid.New().String(),
		Category:     cat,
		BudgetGoal:   goal.Goal,
		CurrentSpent: spent,
		Percentage:   evaluation.Percentage,
		Type:         evaluation.Type,
		Message:      evaluation.Message,
		Month:        monthKey(now),
		Year:         now.Year(),
	})
	if err != nil {
		return err
	}
	if isNew {
		log.Infof("created %s budget alert %s for category %s", created.Type, created.Uid, created.Category)
	}
	return nil
}

func findGoal(goals []CategoryGoal, cat category.Category) (CategoryGoal, bool) {
	for _, goal := range goals {
		if goal.Category == cat {
			return goal, true
		}
	}
	return CategoryGoal{}, false
}

func currencyOf(u user.User) string {
	if u.Currency == "" {
		return user.DefaultCurrency
	}
	return u.Currency
}
