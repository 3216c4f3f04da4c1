package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/debt"
	"github.com/fintrack/fintrack/pkg/google"
	"github.com/fintrack/fintrack/pkg/reminder"
	"github.com/fintrack/fintrack/pkg/summary"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	TransactionRepo    transaction.Repository
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	GoalRepo      budget.GoalRepo
	AlertRepo     budget.AlertRepo
	BudgetService *budget.ServiceImpl
	BudgetHandler *budget.Handler

	DebtService debt.Service
	DebtHandler *debt.Handler

	ReminderService reminder.Service
	ReminderHandler *reminder.Handler

	SummaryService summary.Service
	SummaryHandler *summary.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TransactionRepo = transaction.NewRepository(db)
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, deps.EventBus, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.GoalRepo = budget.NewGoalRepo(db)
	deps.AlertRepo = budget.NewAlertRepo(db)
	deps.BudgetService = budget.NewService(deps.GoalRepo, deps.AlertRepo, deps.TransactionRepo, deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	// Recorded expenses feed budget alert evaluation through the bus.
	event_bus.SubscribeTyped(deps.EventBus, event_bus.TransactionCreated, deps.BudgetService.HandleTransactionCreated)

	deps.DebtService = debt.NewService(debt.NewRepository(db))
	deps.DebtHandler = debt.NewHandler(deps.DebtService)

	deps.ReminderService = reminder.NewService(reminder.NewRepository(db))
	deps.ReminderHandler = reminder.NewHandler(deps.ReminderService)

	deps.SummaryService = summary.NewService(deps.TransactionRepo, deps.GoalRepo)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.ReminderService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
