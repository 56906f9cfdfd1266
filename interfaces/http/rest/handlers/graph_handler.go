package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"kgraph/domain/graph"
)

// GraphReader is the read-side surface the graph handler needs.
type GraphReader interface {
	GetGraph(ctx context.Context) (*graph.Snapshot, error)
	SearchConcepts(ctx context.Context, query string) ([]graph.Concept, error)
	GetStatistics(ctx context.Context) (*graph.Statistics, error)
}

// GraphHandler handles graph read requests
type GraphHandler struct {
	reader GraphReader
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(reader GraphReader, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		reader: reader,
		logger: logger,
	}
}

// GetGraph handles GET /api/graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reader.GetGraph(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, snapshot)
}

// SearchConcepts handles GET /api/concepts/search?q=
func (h *GraphHandler) SearchConcepts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	concepts, err := h.reader.SearchConcepts(r.Context(), query)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, concepts)
}

// GetStatistics handles GET /api/statistics
func (h *GraphHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reader.GetStatistics(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, stats)
}
