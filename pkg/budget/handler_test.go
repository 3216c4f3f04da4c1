package budget

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) *Handler {
	service := NewService(NewStubGoalRepo(), NewStubAlertRepo(), transaction.NewStubRepository(), clock)
	return NewHandler(service)
}

func TestSetCategoryGoals_InvalidCategory(t *testing.T) {
	handler := setupHandlerTest(t)

	body, err := json.Marshal([]CategoryGoalDTO{
		{Category: "Food", Goal: 1000},
		{Category: "Groceries", Goal: 500},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/category-goals", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SetCategoryGoals(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err = json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid category goals", errResponse.Error)
}

func TestSetCategoryGoals_ReturnsStoredGoals(t *testing.T) {
	handler := setupHandlerTest(t)

	body, err := json.Marshal([]CategoryGoalDTO{
		{Category: "Travel", Goal: 500},
		{Category: "Food", Goal: 1000},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/category-goals", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SetCategoryGoals(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	var stored []CategoryGoalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stored))
	assert.Equal(t, []CategoryGoalDTO{
		{Category: "Food", Goal: 1000},
		{Category: "Travel", Goal: 500},
	}, stored)
}

func TestGetAlerts_InvalidIsReadFilter(t *testing.T) {
	handler := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/budget/alerts?isRead=maybe", nil)
	w := httptest.NewRecorder()

	handler.GetAlerts(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAlertAsRead_UnknownAlert(t *testing.T) {
	handler := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/budget/alerts/no-such-alert/read", nil)
	req = mux.SetURLVars(req, map[string]string{"alertUid": "no-such-alert"})
	w := httptest.NewRecorder()

	handler.MarkAlertAsRead(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBudgetTracking_EmptyGoals(t *testing.T) {
	handler := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/budget/tracking", nil)
	w := httptest.NewRecorder()

	handler.GetBudgetTracking(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	var report TrackingReportDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "2024-03", report.Month)
	assert.Equal(t, 2024, report.Year)
	assert.Empty(t, report.Tracking)
}
