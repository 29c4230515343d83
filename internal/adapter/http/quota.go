package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGetQuota returns a tenant's current allowance for one message type.
func (h *Handler) handleGetQuota(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	messageType := chi.URLParam(r, "messageType")

	account, err := h.quotas.Get(r.Context(), tenantID, messageType)
	if err != nil {
		h.logger.Error("quota lookup error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if account == nil {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"tenant_id":    account.TenantID,
		"message_type": account.MessageType,
		"limit":        account.Limit,
		"used":         account.Used,
		"remaining":    account.Remaining(),
	})
}
