package reminder

import (
	"time"

	"github.com/fintrack/fintrack/pkg/category"
)

// Reminder is an upcoming payment the user wants to be nudged about, such as
// rent or a subscription renewal.
type Reminder struct {
	Id          int
	Uid         string
	Title       string
	Amount      float64
	Category    category.Category
	Date        time.Time
	IsRecurring bool
	CreatedAt   time.Time
}
