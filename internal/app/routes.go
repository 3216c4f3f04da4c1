package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/categories", category.NewHandler().GetCategories).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/transactions/summary", deps.TransactionHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/transactions/{transactionUid}", deps.TransactionHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/transactions/{transactionUid}", deps.TransactionHandler.DeleteTransaction).Methods("DELETE")

	// Budget goals and alerts
	r.HandleFunc("/api/category-goals", deps.BudgetHandler.SetCategoryGoals).Methods("PUT")
	r.HandleFunc("/api/category-goals", deps.BudgetHandler.GetCategoryGoals).Methods("GET")
	r.HandleFunc("/api/budget/tracking", deps.BudgetHandler.GetBudgetTracking).Methods("GET")
	r.HandleFunc("/api/budget/alerts", deps.BudgetHandler.GetAlerts).Methods("GET")
	r.HandleFunc("/api/budget/alerts/{alertUid}/read", deps.BudgetHandler.MarkAlertAsRead).Methods("PATCH")

	// Debts
	r.HandleFunc("/api/debts", deps.DebtHandler.CreateDebt).Methods("POST")
	r.HandleFunc("/api/debts", deps.DebtHandler.GetDebts).Methods("GET")
	r.HandleFunc("/api/debts/{debtUid}", deps.DebtHandler.DeleteDebt).Methods("DELETE")

	// Reminders
	r.HandleFunc("/api/reminders", deps.ReminderHandler.CreateReminder).Methods("POST")
	r.HandleFunc("/api/reminders", deps.ReminderHandler.GetReminders).Methods("GET")
	r.HandleFunc("/api/reminders/{reminderUid}", deps.ReminderHandler.DeleteReminder).Methods("DELETE")
	r.HandleFunc("/api/reminders/{reminderUid}/export-to-google", deps.GoogleHandler.ExportReminder).Methods("POST")

	// Summary
	r.HandleFunc("/api/summary", deps.SummaryHandler.GetOverview).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
}
