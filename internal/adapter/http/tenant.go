package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bulkmailer/internal/core/domain"
)

type tenantSettingsRequest struct {
	Provider            string `json:"provider"`
	FromAddress         string `json:"from_address"`
	SMTPHost            string `json:"smtp_host,omitempty"`
	SMTPPort            int    `json:"smtp_port,omitempty"`
	SMTPUser            string `json:"smtp_user,omitempty"`
	SMTPPassword        string `json:"smtp_password,omitempty"`
	SendGridKey         string `json:"sendgrid_key,omitempty"`
	ConsentCheckEnabled bool   `json:"consent_check_enabled"`
	IYSCode             int    `json:"iys_code,omitempty"`
	BrandCode           int    `json:"brand_code,omitempty"`
	RecipientType       string `json:"recipient_type,omitempty"`
}

func (h *Handler) handleGetTenantSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.tenants.Settings(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		h.logger.Error("tenant settings lookup error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if settings == nil {
		http.NotFound(w, r)
		return
	}
	// Credentials stay server-side.
	settings.SMTPPassword = ""
	settings.SendGridKey = ""
	h.writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) handlePutTenantSettings(w http.ResponseWriter, r *http.Request) {
	var req tenantSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	kind := domain.TransportKind(req.Provider)
	if kind != domain.TransportSMTP && kind != domain.TransportSendGrid {
		http.Error(w, "provider must be smtp or sendgrid", http.StatusBadRequest)
		return
	}
	settings := &domain.TenantSettings{
		TenantID:            chi.URLParam(r, "tenantID"),
		Provider:            kind,
		FromAddress:         req.FromAddress,
		SMTPHost:            req.SMTPHost,
		SMTPPort:            req.SMTPPort,
		SMTPUser:            req.SMTPUser,
		SMTPPassword:        req.SMTPPassword,
		SendGridKey:         req.SendGridKey,
		ConsentCheckEnabled: req.ConsentCheckEnabled,
		IYSCode:             req.IYSCode,
		BrandCode:           req.BrandCode,
		RecipientType:       req.RecipientType,
	}
	if err := h.tenants.Upsert(r.Context(), settings); err != nil {
		h.logger.Error("tenant settings upsert error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
