package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/HSAR/GamesInCommon/internal/domain"
)

type FiltersHandler struct{}

func NewFiltersHandler() *FiltersHandler {
	return &FiltersHandler{}
}

type FilterResponse struct {
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
}

type FiltersResponse struct {
	Filters []FilterResponse `json:"filters"`
}

func (h *FiltersHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	kinds := domain.AllFilterKinds()

	resp := FiltersResponse{Filters: make([]FilterResponse, len(kinds))}
	for i, k := range kinds {
		resp.Filters[i] = FilterResponse{Name: k.String(), Keyword: k.Keyword()}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
