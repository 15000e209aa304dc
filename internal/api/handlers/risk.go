package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/internal/engine"
	"github.com/tomvannes/riskpulse/internal/signals"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

// Broadcaster pushes a completed evaluation to live subscribers.
type Broadcaster interface {
	Broadcast(v interface{})
}

// RiskHandler handles risk API endpoints.
type RiskHandler struct {
	provider    contracts.Provider
	evaluator   *engine.Evaluator
	snapshots   contracts.SnapshotStore
	history     contracts.HistoryLog
	broadcaster Broadcaster
	logger      *logger.Logger
}

// NewRiskHandler creates a new risk handler.
func NewRiskHandler(
	provider contracts.Provider,
	evaluator *engine.Evaluator,
	snapshots contracts.SnapshotStore,
	history contracts.HistoryLog,
	broadcaster Broadcaster,
	log *logger.Logger,
) *RiskHandler {
	return &RiskHandler{
		provider:    provider,
		evaluator:   evaluator,
		snapshots:   snapshots,
		history:     history,
		broadcaster: broadcaster,
		logger:      log,
	}
}

// GetCurrent returns the last persisted snapshot.
// GET /api/risk/current
func (h *RiskHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshots.Load(r.Context())
	respondJSON(w, http.StatusOK, snapshot)
}

// SignalInfo describes one catalog entry.
type SignalInfo struct {
	Name          string `json:"name"`
	MissingPolicy string `json:"missing_policy"`
}

// GetSignals returns the signal catalog in display order.
// GET /api/risk/signals
func (h *RiskHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	catalog := signals.Catalog()
	infos := make([]SignalInfo, 0, len(catalog))
	for _, def := range catalog {
		infos = append(infos, SignalInfo{
			Name:          def.Name,
			MissingPolicy: string(def.Missing),
		})
	}
	respondJSON(w, http.StatusOK, infos)
}

// GetHistory returns the full crash-probability trend.
// GET /api/risk/history
func (h *RiskHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.history.ReadAll(r.Context())
	if entries == nil {
		entries = []contracts.HistoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Evaluate runs a full evaluation and pushes the result to live
// subscribers.
// POST /api/risk/evaluate
func (h *RiskHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values := h.provider.Collect(ctx)
	result := h.evaluator.Evaluate(ctx, values, time.Now())

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(result)
	}

	respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
