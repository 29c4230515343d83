package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bulkmailer/internal/core/port"
)

// handleDispatch runs a dispatch run synchronously and returns its outcome:
// a completion summary, a quota rejection with remaining-quota figures, or
// a structural failure with the reason and no sends attempted.
func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	result, err := h.dispatcher.Dispatch(r.Context(), campaignID)
	if err != nil && result == nil {
		var quotaErr *port.QuotaExceededError
		var resolutionErr *port.ResolutionError
		var consentErr *port.ConsentCheckError
		switch {
		case errors.Is(err, port.ErrCampaignNotFound):
			http.NotFound(w, r)
		case errors.As(err, &quotaErr):
			h.writeJSON(w, http.StatusConflict, map[string]any{
				"error":     "quota exceeded",
				"requested": quotaErr.Requested,
				"remaining": quotaErr.Remaining,
				"limit":     quotaErr.Limit,
			})
		case errors.Is(err, port.ErrQuotaNotConfigured),
			errors.Is(err, port.ErrConsentConfigUnavailable):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
		case errors.As(err, &resolutionErr), errors.As(err, &consentErr):
			h.logger.Error("dispatch aborted by upstream dependency",
				slog.String("campaign_id", campaignID), slog.Any("error", err))
			h.writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		default:
			h.logger.Error("dispatch error",
				slog.String("campaign_id", campaignID), slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	if err != nil {
		// Post-send bookkeeping failed; the summary is still valid.
		h.logger.Error("dispatch completed with bookkeeping errors",
			slog.String("campaign_id", campaignID), slog.Any("error", err))
	}
	h.writeJSON(w, http.StatusOK, result)
}
