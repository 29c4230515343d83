package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleClickRedirect resolves a tracked link, counts the click and
// redirects to the original destination. Unknown ids produce HTTP 404;
// internal errors are logged and also treated as 404 to avoid leaking
// information to probing clients.
func (h *Handler) handleClickRedirect(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "linkID")
	if linkID == "" {
		http.Error(w, "missing link id", http.StatusBadRequest)
		return
	}
	link, err := h.links.GetByID(r.Context(), linkID)
	if err != nil {
		h.logger.Error("click lookup error", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	if link == nil {
		http.NotFound(w, r)
		return
	}
	if err = h.links.IncrementClick(r.Context(), linkID); err != nil {
		// The redirect still happens; losing one count beats a broken link.
		h.logger.Error("click count increment error",
			slog.String("link_id", linkID), slog.Any("error", err))
	}
	http.Redirect(w, r, link.OriginalHref, http.StatusFound)
}
