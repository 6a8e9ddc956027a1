package handler

import (
	"encoding/json"
	"net/http"

	"cocodile/internal/service"

	"github.com/rs/zerolog"
)

// WholesalerHandler handles wholesaler-related HTTP requests.
type WholesalerHandler struct {
	service service.WholesalerService
	logger  zerolog.Logger
}

// NewWholesalerHandler creates a new wholesaler handler.
func NewWholesalerHandler(service service.WholesalerService, logger zerolog.Logger) *WholesalerHandler {
	return &WholesalerHandler{
		service: service,
		logger:  logger.With().Str("handler", "wholesaler").Logger(),
	}
}

// validateCodeRequest is the payload for POST /api/wholesalers/validate-code.
type validateCodeRequest struct {
	Code string `json:"code"`
}

// ValidateCode handles POST /api/wholesalers/validate-code requests.
func (h *WholesalerHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req validateCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "access code is required", h.logger)
		return
	}

	wholesaler, err := h.service.ValidateCode(r.Context(), req.Code)
	if err != nil {
		writeDomainError(w, err, "failed to validate access code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":      true,
		"wholesaler": wholesaler,
	})
}
