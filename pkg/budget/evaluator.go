package budget

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fintrack/fintrack/pkg/category"
)

const (
	warningThreshold  = 80.0
	exceededThreshold = 100.0
)

// Evaluation is the outcome of comparing spend against a goal. Percentage is
// the display value, clamped to 100; the EXCEEDED message reports the true,
// unclamped overage amount.
type Evaluation struct {
	Type       AlertType
	Message    string
	Percentage float64
}

// Evaluate decides whether spend against a goal warrants an alert. Pure: no
// I/O, no side effects. A zero goal means "no goal set" and never alerts,
// which also guards the division.
func Evaluate(cat category.Category, currency string, goal, spent float64) Evaluation {
	percentage := 0.0
	if goal > 0 {
		percentage = spent / goal * 100
	}

	result := Evaluation{Percentage: math.Min(percentage, exceededThreshold)}
	switch {
	case percentage >= exceededThreshold:
		result.Type = AlertExceeded
		overage := strconv.FormatFloat(math.Abs(goal-spent), 'f', -1, 64)
		result.Message = fmt.Sprintf("You've exceeded your %s budget by %s%s", cat, currency, overage)
	case percentage >= warningThreshold:
		result.Type = AlertWarning
		result.Message = fmt.Sprintf("You've used %.1f%% of your %s budget", percentage, cat)
	}
	return result
}
