package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bulkmailer/internal/adapter/usecase"
	"bulkmailer/internal/core/port"
)

// Handler contains dependencies and routes. It is the inbound HTTP adapter:
// campaign CRUD, on-demand dispatch, tenant settings, quota lookup and the
// click/open tracking endpoints. Routes are registered on a chi.Router.
type Handler struct {
	campaigns  *usecase.CampaignService
	dispatcher port.Dispatcher
	links      port.LinkStore
	deliveries port.DeliveryLogStore
	quotas     port.QuotaStore
	tenants    port.TenantStore
	logger     *slog.Logger
	router     chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(
	campaigns *usecase.CampaignService,
	dispatcher port.Dispatcher,
	links port.LinkStore,
	deliveries port.DeliveryLogStore,
	quotas port.QuotaStore,
	tenants port.TenantStore,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		campaigns:  campaigns,
		dispatcher: dispatcher,
		links:      links,
		deliveries: deliveries,
		quotas:     quotas,
		tenants:    tenants,
		logger:     logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Put("/campaigns/{id}", h.handleUpdateCampaign)
		r.Delete("/campaigns/{id}", h.handleArchiveCampaign)
		r.Post("/campaigns/{id}/dispatch", h.handleDispatch)
		r.Get("/tenants/{tenantID}/settings", h.handleGetTenantSettings)
		r.Put("/tenants/{tenantID}/settings", h.handlePutTenantSettings)
		r.Get("/tenants/{tenantID}/quota/{messageType}", h.handleGetQuota)
	})

	// Tracking endpoints live at the root: their URLs are embedded into
	// outgoing mail and should stay short.
	r.Get("/r/{linkID}", h.handleClickRedirect)
	r.Get("/o/{entryID}.png", h.handleOpenPixel)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
