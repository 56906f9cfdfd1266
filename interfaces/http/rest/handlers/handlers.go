package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"kgraph/pkg/common"
	"kgraph/pkg/errors"
)

// maxBodyBytes caps request bodies; every payload here is a small JSON object.
const maxBodyBytes = 1 << 20

func respondJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	if err := common.RespondError(w, status, message); err != nil {
		logger.Error("Failed to encode error response", zap.Error(err))
	}
}

// respondServiceError translates a service failure into the transport status
// derived from its error type, preserving the diagnostic text.
func respondServiceError(logger *zap.Logger, w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	if encodeErr := common.RespondError(w, status, err.Error()); encodeErr != nil {
		logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}
