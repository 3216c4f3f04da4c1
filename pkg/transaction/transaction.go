package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
)

// PaymentMethod is how a transaction was paid. Like categories, the set is
// closed so filters always match stored values.
type PaymentMethod string

const (
	Cash       PaymentMethod = "Cash"
	UPI        PaymentMethod = "UPI"
	CreditCard PaymentMethod = "Credit Card"
	DebitCard  PaymentMethod = "Debit Card"
	NetBanking PaymentMethod = "Net Banking"
	Wallet     PaymentMethod = "Wallet"
	Other      PaymentMethod = "Other"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

var paymentMethods = []PaymentMethod{Cash, UPI, CreditCard, DebitCard, NetBanking, Wallet, Other}

// ParsePaymentMethod validates a raw payment method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
}

// Transaction is a single ledger entry. Amount is signed: negative values are
// expenses, positive values income.
type Transaction struct {
	Id            int
	Uid           string
	Title         string
	Amount        float64
	Category      category.Category
	PaymentMethod PaymentMethod
	Note          string
	Tags          []string
	Date          time.Time
	CreatedAt     time.Time
}

// Filter narrows a transaction listing. Zero values mean "no filter".
type Filter struct {
	Search        string
	Category      category.Category
	PaymentMethod PaymentMethod
	Page          int
	Limit         int
}

// Page is one page of a transaction listing.
type Page struct {
	Transactions []Transaction
	CurrentPage  int
	TotalPages   int
	HasMore      bool
}

// Summary aggregates the whole ledger of a user.
type Summary struct {
	TotalTransactions int
	Income            float64
	Expense           float64
	Net               float64
}
