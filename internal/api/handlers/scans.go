package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/HSAR/GamesInCommon/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ScansHandler struct {
	scans  repository.ScanRepository
	logger zerolog.Logger
}

func NewScansHandler(scans repository.ScanRepository, logger zerolog.Logger) *ScansHandler {
	return &ScansHandler{scans: scans, logger: logger}
}

type ScanResponse struct {
	AppID     uint32   `json:"appId"`
	CheckedAt string   `json:"checkedAt"`
	Matched   []string `json:"matched"`
}

type ScansResponse struct {
	Scans []ScanResponse `json:"scans"`
}

func (h *ScansHandler) GetByGame(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.ParseUint(chi.URLParam(r, "appID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid app id", http.StatusBadRequest)
		return
	}

	records, err := h.scans.GetByGame(r.Context(), uint32(appID))
	if err != nil {
		h.logger.Error().Err(err).Uint64("appId", appID).Msg("failed to load scan history")
		http.Error(w, "Failed to load scan history", http.StatusInternalServerError)
		return
	}

	resp := ScansResponse{Scans: make([]ScanResponse, len(records))}
	for i, rec := range records {
		matched := make([]string, len(rec.Matched))
		for j, k := range rec.Matched {
			matched[j] = k.String()
		}
		resp.Scans[i] = ScanResponse{
			AppID:     rec.AppID,
			CheckedAt: rec.CheckedAt.UTC().Format(time.RFC3339),
			Matched:   matched,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
