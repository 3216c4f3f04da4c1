package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Uid           string    `json:"uid,omitempty"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	Note          string    `json:"note,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Date          time.Time `json:"date,omitempty"`
}

type PageDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	CurrentPage  int              `json:"currentPage"`
	TotalPages   int              `json:"totalPages"`
	HasMore      bool             `json:"hasMore"`
}

type SummaryDTO struct {
	TotalTransactions int     `json:"totalTransactions"`
	Income            float64 `json:"income"`
	Expense           float64 `json:"expense"`
	Net               float64 `json:"net"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	t, err := dtoToTransaction(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
		return
	}
	if t.Title == "" || t.PaymentMethod == "" {
		rest.WriteError(w, http.StatusBadRequest, "Title, amount, and payment method are required", "")
		return
	}

	created, err := h.service.Create(r.Context(), t)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(page.Transactions))
	for _, t := range page.Transactions {
		dtos = append(dtos, transactionToDTO(t))
	}
	response := PageDTO{
		Transactions: dtos,
		CurrentPage:  page.CurrentPage,
		TotalPages:   page.TotalPages,
		HasMore:      page.HasMore,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["transactionUid"]

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction uid in request body", "")
		return
	}
	dto.Uid = uid

	t, err := dtoToTransaction(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), t)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(transactionToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["transactionUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := SummaryDTO{
		TotalTransactions: summary.TotalTransactions,
		Income:            summary.Income,
		Expense:           summary.Expense,
		Net:               summary.Net,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	filter := Filter{
		Search: r.URL.Query().Get("search"),
		Page:   1,
		Limit:  10,
	}

	if pageString := r.URL.Query().Get("page"); pageString != "" {
		page, err := strconv.Atoi(pageString)
		if err != nil || page < 1 {
			return Filter{}, errors.New("page must be a positive integer")
		}
		filter.Page = page
	}
	if limitString := r.URL.Query().Get("limit"); limitString != "" {
		limit, err := strconv.Atoi(limitString)
		if err != nil || limit < 1 {
			return Filter{}, errors.New("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	if categoryString := r.URL.Query().Get("category"); categoryString != "" {
		cat, err := category.Parse(categoryString)
		if err != nil {
			return Filter{}, err
		}
		filter.Category = cat
	}
	if methodString := r.URL.Query().Get("paymentMethod"); methodString != "" {
		method, err := ParsePaymentMethod(methodString)
		if err != nil {
			return Filter{}, err
		}
		filter.PaymentMethod = method
	}

	return filter, nil
}

func transactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Uid:           t.Uid,
		Title:         t.Title,
		Amount:        t.Amount,
		Category:      string(t.Category),
		PaymentMethod: string(t.PaymentMethod),
		Note:          t.Note,
		Tags:          t.Tags,
		Date:          t.Date,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, error) {
	t := Transaction{
		Uid:    dto.Uid,
		Title:  dto.Title,
		Amount: dto.Amount,
		Note:   dto.Note,
		Tags:   dto.Tags,
		Date:   dto.Date,
	}
	if dto.Category != "" {
		cat, err := category.Parse(dto.Category)
		if err != nil {
			return Transaction{}, err
		}
		t.Category = cat
	}
	if dto.PaymentMethod != "" {
		method, err := ParsePaymentMethod(dto.PaymentMethod)
		if err != nil {
			return Transaction{}, err
		}
		t.PaymentMethod = method
	}
	return t, nil
}
