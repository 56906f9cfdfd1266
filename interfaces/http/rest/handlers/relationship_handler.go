package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"kgraph/domain/graph"
	"kgraph/pkg/common"
	"kgraph/pkg/utils"
)

// GraphMutator is the write-side surface the relationship handler needs.
type GraphMutator interface {
	CreateRelationship(ctx context.Context, sourceID, targetID, relType string) (*graph.Relationship, error)
	CleanupOrphans(ctx context.Context) (*graph.CleanupResult, error)
}

// RelationshipHandler handles graph mutation requests
type RelationshipHandler struct {
	mutator GraphMutator
	logger  *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(mutator GraphMutator, logger *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{
		mutator: mutator,
		logger:  logger,
	}
}

// CreateRelationshipRequest represents the request body for creating a relationship
type CreateRelationshipRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Type   string `json:"type" validate:"required"`
}

// CreateRelationship handles POST /api/relationships
func (h *RelationshipHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req CreateRelationshipRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rel, err := h.mutator.CreateRelationship(r.Context(), req.Source, req.Target, req.Type)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, rel)
}

// Cleanup handles POST /api/cleanup
func (h *RelationshipHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	result, err := h.mutator.CleanupOrphans(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}
