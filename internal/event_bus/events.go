package event_bus

import "time"

const (
	// TransactionCreated is published after a transaction row is persisted.
	TransactionCreated EventType = "transaction.created"
)

// TransactionCreatedData carries the minimal facts the budget alert pipeline
// needs: whose ledger changed, in which category, and by how much.
type TransactionCreatedData struct {
	TransactionUid string
	Category       string
	Amount         float64
	Date           time.Time
}
