package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ComparisonHandler struct {
	jobs   *service.JobManager
	logger zerolog.Logger
}

func NewComparisonHandler(jobs *service.JobManager, logger zerolog.Logger) *ComparisonHandler {
	return &ComparisonHandler{jobs: jobs, logger: logger}
}

type CreateComparisonRequest struct {
	Accounts     []string `json:"accounts"`
	Filters      []string `json:"filters"`
	ForceRefresh bool     `json:"forceRefresh"`
}

type ComparisonJobResponse struct {
	ID         uuid.UUID          `json:"id"`
	State      domain.JobState    `json:"state"`
	Accounts   []string           `json:"accounts"`
	Filters    []string           `json:"filters"`
	Result     *domain.Comparison `json:"result,omitempty"`
	Error      string             `json:"error,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	FinishedAt *time.Time         `json:"finishedAt,omitempty"`
}

func jobResponse(job service.Job) ComparisonJobResponse {
	filters := make([]string, len(job.Input.Filters))
	for i, k := range job.Input.Filters {
		filters[i] = k.String()
	}

	resp := ComparisonJobResponse{
		ID:        job.ID,
		State:     job.State,
		Accounts:  job.Input.Accounts,
		Filters:   filters,
		Result:    job.Result,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
	}
	if !job.FinishedAt.IsZero() {
		finished := job.FinishedAt
		resp.FinishedAt = &finished
	}
	return resp
}

func (h *ComparisonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Accounts) == 0 {
		http.Error(w, "At least one account is required", http.StatusBadRequest)
		return
	}

	filters := make([]domain.FilterKind, 0, len(req.Filters))
	for _, name := range req.Filters {
		kind, err := domain.ParseFilterKind(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filters = append(filters, kind)
	}

	job := h.jobs.Start(service.CompareInput{
		Accounts:     req.Accounts,
		Filters:      filters,
		ForceRefresh: req.ForceRefresh,
	})
	h.logger.Info().Stringer("job", job.ID).Strs("accounts", req.Accounts).Msg("comparison started")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(jobResponse(job))
}

func (h *ComparisonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.Get(id)
	if err != nil {
		http.Error(w, "Comparison not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobResponse(job))
}

func (h *ComparisonHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	if err := h.jobs.Cancel(id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			http.Error(w, "Comparison not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to cancel comparison", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
