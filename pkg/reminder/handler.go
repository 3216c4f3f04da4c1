package reminder

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ReminderDTO struct {
	Uid         string    `json:"uid,omitempty"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"isRecurring"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new reminder")
	w.Header().Set("Content-Type", "application/json")

	var dto ReminderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	rem, err := dtoToReminder(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid reminder", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), rem)
	if err != nil {
		if errors.Is(err, ErrInvalidReminder) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid reminder", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(reminderToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reminders, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ReminderDTO, 0, len(reminders))
	for _, rem := range reminders {
		dtos = append(dtos, reminderToDTO(rem))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["reminderUid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrReminderNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Reminder not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reminderToDTO(rem Reminder) ReminderDTO {
	return ReminderDTO{
		Uid:         rem.Uid,
		Title:       rem.Title,
		Amount:      rem.Amount,
		Category:    string(rem.Category),
		Date:        rem.Date,
		IsRecurring: rem.IsRecurring,
	}
}

func dtoToReminder(dto ReminderDTO) (Reminder, error) {
	rem := Reminder{
		Uid:         dto.Uid,
		Title:       dto.Title,
		Amount:      dto.Amount,
		Date:        dto.Date,
		IsRecurring: dto.IsRecurring,
	}
	if dto.Category != "" {
		cat, err := category.Parse(dto.Category)
		if err != nil {
			return Reminder{}, err
		}
		rem.Category = cat
	}
	return rem, nil
}
