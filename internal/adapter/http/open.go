package httpadapter

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// trackingPixel is a 1x1 transparent PNG served by the open endpoint.
var trackingPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/wcAAgEBAYHdRxMAAAAASUVORK5CYII=")

// handleOpenPixel marks a delivery-log entry as opened and serves the
// pixel. The transition is idempotent: only a delivered entry changes, so
// repeated opens are no-ops. The pixel is served even when the entry is
// unknown; mail clients should never see an error for an inline image.
func (h *Handler) handleOpenPixel(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID != "" {
		if _, err := h.deliveries.MarkOpened(r.Context(), entryID); err != nil {
			h.logger.Error("open tracking error",
				slog.String("entry_id", entryID), slog.Any("error", err))
		}
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(trackingPixel)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(trackingPixel)
}
