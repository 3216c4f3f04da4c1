package category

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetCategories lists the fixed set of categories.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(All()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
