package budget

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

type CategoryGoalDTO struct {
	Category string  `json:"category"`
	Goal     float64 `json:"goal"`
}

type BudgetAlertDTO struct {
	Uid          string    `json:"uid"`
	Category     string    `json:"category"`
	BudgetGoal   float64   `json:"budgetGoal"`
	CurrentSpent float64   `json:"currentSpent"`
	Percentage   float64   `json:"percentage"`
	AlertType    string    `json:"alertType"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	Month        string    `json:"month"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
}

type TrackingRowDTO struct {
	Category     string  `json:"category"`
	BudgetGoal   float64 `json:"budgetGoal"`
	CurrentSpent float64 `json:"currentSpent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	AlertType    string  `json:"alertType,omitempty"`
	Message      string  `json:"message,omitempty"`
}

type TrackingReportDTO struct {
	Tracking []TrackingRowDTO `json:"tracking"`
	Month    string           `json:"month"`
	Year     int              `json:"year"`
	Alerts   []BudgetAlertDTO `json:"alerts"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) SetCategoryGoals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating category goals")
	w.Header().Set("Content-Type", "application/json")

	var dtos []CategoryGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	goals := make([]CategoryGoal, 0, len(dtos))
	for _, dto := range dtos {
		goals = append(goals, CategoryGoal{Category: category.Category(dto.Category), Goal: dto.Goal})
	}

	if err := h.service.SetCategoryGoals(r.Context(), goals); err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid category goals", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeGoals(w, r)
}

func (h *Handler) GetCategoryGoals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeGoals(w, r)
}

func (h *Handler) writeGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.GetCategoryGoals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryGoalDTO, 0, len(goals))
	for _, goal := range goals {
		dtos = append(dtos, CategoryGoalDTO{Category: string(goal.Category), Goal: goal.Goal})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBudgetTracking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, err := h.service.GetBudgetTracking(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(trackingReportToDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var isRead *bool
	if isReadString := r.URL.Query().Get("isRead"); isReadString != "" {
		value, err := strconv.ParseBool(isReadString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid isRead filter", err.Error())
			return
		}
		isRead = &value
	}

	alerts, err := h.service.GetAlerts(r.Context(), isRead)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BudgetAlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, alertToDTO(alert))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) MarkAlertAsRead(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["alertUid"]

	alert, err := h.service.MarkAlertAsRead(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrAlertNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Alert not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(alertToDTO(alert)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func trackingReportToDTO(report TrackingReport) TrackingReportDTO {
	rows := make([]TrackingRowDTO, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, TrackingRowDTO{
			Category:     string(row.Category),
			BudgetGoal:   row.BudgetGoal,
			CurrentSpent: row.CurrentSpent,
			Remaining:    row.Remaining,
			Percentage:   row.Percentage,
			AlertType:    string(row.AlertType),
			Message:      row.Message,
		})
	}
	alerts := make([]BudgetAlertDTO, 0, len(report.Alerts))
	for _, alert := range report.Alerts {
		alerts = append(alerts, alertToDTO(alert))
	}
	return TrackingReportDTO{
		Tracking: rows,
		Month:    report.Month,
		Year:     report.Year,
		Alerts:   alerts,
	}
}

func alertToDTO(alert BudgetAlert) BudgetAlertDTO {
	return BudgetAlertDTO{
		Uid:          alert.Uid,
		Category:     string(alert.Category),
		BudgetGoal:   alert.BudgetGoal,
		CurrentSpent: alert.CurrentSpent,
		Percentage:   alert.Percentage,
		AlertType:    string(alert.Type),
		Message:      alert.Message,
		IsRead:       alert.IsRead,
		Month:        alert.Month,
		Year:         alert.Year,
		CreatedAt:    alert.CreatedAt,
	}
}
