package debt

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DebtDTO struct {
	Uid       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new debt")
	w.Header().Set("Content-Type", "application/json")

	var dto DebtDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), Debt{Name: dto.Name, Amount: dto.Amount})
	if err != nil {
		if errors.Is(err, ErrInvalidDebt) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid debt", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(debtToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetDebts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	debts, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DebtDTO, 0, len(debts))
	for _, d := range debts {
		dtos = append(dtos, debtToDTO(d))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["debtUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Debt not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func debtToDTO(d Debt) DebtDTO {
	return DebtDTO{
		Uid:       d.Uid,
		Name:      d.Name,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
	}
}
