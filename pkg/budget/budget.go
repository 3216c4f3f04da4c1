package budget

import (
	"fmt"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
)

// CategoryGoal is a user's monthly spending ceiling for one category. Goals
// do not vary month to month; the stored value is the current standing
// target.
type CategoryGoal struct {
	Category category.Category
	Goal     float64
}

type AlertType string

const (
	AlertNone     AlertType = ""
	AlertWarning  AlertType = "WARNING"
	AlertExceeded AlertType = "EXCEEDED"
)

// BudgetAlert is a durable notification that spend crossed a threshold. It is
// a snapshot taken when the threshold was first crossed in a month and is
// never re-evaluated; (user, category, month, year, type) is unique.
type BudgetAlert struct {
	Id           int
	Uid          string
	Category     category.Category
	BudgetGoal   float64
	CurrentSpent float64
	// Percentage is capped at 100 for display even when spend exceeds the
	// goal; the message carries the uncapped overage.
	Percentage float64
	Type       AlertType
	Message    string
	IsRead     bool
	Month      string // "YYYY-MM"
	Year       int
	CreatedAt  time.Time
}

// TrackingRow is the live goal-vs-spend status of one category. alertType and
// message are recomputed on every read, unlike the persisted BudgetAlert
// snapshots.
type TrackingRow struct {
	Category     category.Category
	BudgetGoal   float64
	CurrentSpent float64
	Remaining    float64
	Percentage   float64
	AlertType    AlertType
	Message      string
}

// TrackingReport is the current month's dashboard view plus the month's
// persisted alerts for the notification center.
type TrackingReport struct {
	Rows   []TrackingRow
	Month  string
	Year   int
	Alerts []BudgetAlert
}

// monthWindow returns the inclusive [first day 00:00:00, last day 23:59:59]
// window of now's calendar month, in now's location.
func monthWindow(now time.Time) (time.Time, time.Time) {
	year, month, _ := now.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, now.Location())
	return start, end
}

// monthKey renders the "YYYY-MM" month identifier used as part of the alert
// dedup tuple.
func monthKey(now time.Time) string {
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}
