package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bulkmailer/internal/adapter/usecase"
	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

type campaignRequest struct {
	TenantID       string     `json:"tenant_id"`
	Subject        string     `json:"subject"`
	BodyHTML       string     `json:"body_html"`
	FromAddress    string     `json:"from_address"`
	AddressingMode string     `json:"addressing_mode"`
	Recipients     []string   `json:"recipients,omitempty"`
	SegmentName    string     `json:"segment_name,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
}

func (req campaignRequest) toInput() usecase.CampaignInput {
	return usecase.CampaignInput{
		TenantID:       req.TenantID,
		Subject:        req.Subject,
		BodyHTML:       req.BodyHTML,
		FromAddress:    req.FromAddress,
		AddressingMode: domain.AddressingMode(req.AddressingMode),
		Recipients:     req.Recipients,
		SegmentName:    req.SegmentName,
		ScheduledAt:    req.ScheduledAt,
	}
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.campaigns.Create(r.Context(), req.toInput())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tenantID := q.Get("tenant_id")
	if tenantID == "" {
		http.Error(w, "tenant_id is required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	campaigns, total, err := h.campaigns.List(r.Context(), tenantID, limit, offset)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"total":     total,
	})
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("get campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.campaigns.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleArchiveCampaign(w http.ResponseWriter, r *http.Request) {
	err := h.campaigns.Archive(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("archive campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
