package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/application/services"
	"kgraph/domain/workers"
	"kgraph/pkg/common"
	"kgraph/pkg/utils"
)

// Supervisor is the worker-control surface the worker handler needs.
type Supervisor interface {
	Start(ctx context.Context, name workers.Name, params workers.Params) (*services.ControlResult, error)
	Stop(ctx context.Context, name workers.Name) (*services.ControlResult, error)
	Status() []ports.WorkerStatus
}

// WorkerHandler handles start/stop/status requests for the external workers
type WorkerHandler struct {
	supervisor Supervisor
	logger     *zap.Logger
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(supervisor Supervisor, logger *zap.Logger) *WorkerHandler {
	return &WorkerHandler{
		supervisor: supervisor,
		logger:     logger,
	}
}

// WorkerStatusView is the per-worker entry of the status response.
type WorkerStatusView struct {
	Running bool `json:"running"`
}

// StartBuilder handles POST /api/builder/start
func (h *WorkerHandler) StartBuilder(w http.ResponseWriter, r *http.Request) {
	var params workers.BuilderParams
	if err := common.ParseJSONBody(r, &params, maxBodyBytes); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.start(w, r, workers.Builder, params)
}

// StopBuilder handles POST /api/builder/stop
func (h *WorkerHandler) StopBuilder(w http.ResponseWriter, r *http.Request) {
	h.stop(w, r, workers.Builder)
}

// StartEnricher handles POST /api/enricher/start
func (h *WorkerHandler) StartEnricher(w http.ResponseWriter, r *http.Request) {
	var params workers.EnricherParams
	if err := common.ParseJSONBody(r, &params, maxBodyBytes); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.start(w, r, workers.Enricher, params)
}

// StopEnricher handles POST /api/enricher/stop
func (h *WorkerHandler) StopEnricher(w http.ResponseWriter, r *http.Request) {
	h.stop(w, r, workers.Enricher)
}

// Status handles GET /api/workers/status
func (h *WorkerHandler) Status(w http.ResponseWriter, r *http.Request) {
	view := make(map[string]WorkerStatusView, 2)
	for _, ws := range h.supervisor.Status() {
		view[string(ws.Name)] = WorkerStatusView{Running: ws.Running}
	}
	respondJSON(h.logger, w, http.StatusOK, view)
}

func (h *WorkerHandler) start(w http.ResponseWriter, r *http.Request, name workers.Name, params workers.Params) {
	if err := utils.ValidateStruct(params); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	result, err := h.supervisor.Start(r.Context(), name, params)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

func (h *WorkerHandler) stop(w http.ResponseWriter, r *http.Request, name workers.Name) {
	result, err := h.supervisor.Stop(r.Context(), name)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}
