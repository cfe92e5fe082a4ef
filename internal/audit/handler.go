package audit

import (
	"net/http"

	"github.com/gigante-rh/talent-intake/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

// List godoc
// @Summary Recent audit entries
// @Description Returns the latest 100 audit log entries, newest first
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Entry
// @Router /audit [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context(), defaultListLimit)
	if err != nil {
		h.Logger.Error("failed to list audit entries", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
