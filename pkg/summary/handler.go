package summary

import (
	"encoding/json"
	"net/http"
	"time"
)

type RecentTransactionDTO struct {
	Uid           string    `json:"uid"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
	Date          time.Time `json:"date"`
}

type OverviewDTO struct {
	TotalTransactions  int                    `json:"totalTransactions"`
	TotalIncome        float64                `json:"totalIncome"`
	TotalExpenses      float64                `json:"totalExpenses"`
	TotalBudget        float64                `json:"totalBudget"`
	Savings            float64                `json:"savings"`
	RecentTransactions []RecentTransactionDTO `json:"recentTransactions"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	overview, err := h.service.GetOverview(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recent := make([]RecentTransactionDTO, 0, len(overview.Recent))
	for _, t := range overview.Recent {
		recent = append(recent, RecentTransactionDTO{
			Uid:           t.Uid,
			Title:         t.Title,
			Amount:        t.Amount,
			Category:      string(t.Category),
			PaymentMethod: string(t.PaymentMethod),
			Date:          t.Date,
		})
	}
	response := OverviewDTO{
		TotalTransactions:  overview.TotalTransactions,
		TotalIncome:        overview.TotalIncome,
		TotalExpenses:      overview.TotalExpenses,
		TotalBudget:        overview.TotalBudget,
		Savings:            overview.Savings,
		RecentTransactions: recent,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
