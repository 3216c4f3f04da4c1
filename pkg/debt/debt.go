package debt

import "time"

// Debt is an outstanding amount owed to or by the user, tracked as a simple
// named balance outside the transaction ledger.
type Debt struct {
	Id        int
	Uid       string
	Name      string
	Amount    float64
	CreatedAt time.Time
}
