package handler

import (
	"net/http"

	"cocodile/internal/middleware"
	"cocodile/internal/service"

	"github.com/rs/zerolog"
)

// InvoiceHandler handles invoice-related HTTP requests.
type InvoiceHandler struct {
	service service.InvoiceService
	logger  zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.With().Str("handler", "invoice").Logger(),
	}
}

// List handles GET /api/invoices requests.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	token, _ := middleware.TokenFromContext(r.Context())

	invoices, dueAmount, err := h.service.List(r.Context(), token, r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err, "failed to retrieve invoices", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invoices":  invoices,
		"total":     len(invoices),
		"dueAmount": dueAmount,
	})
}
