package refdata

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gigante-rh/talent-intake/internal"
	"github.com/gigante-rh/talent-intake/internal/transport"

	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

// List godoc
// @Summary List reference items
// @Description Returns all items of a reference table (cities, job_titles or stores) sorted by name
// @Tags reference
// @Produce json
// @Param kind path string true "Reference kind" Enums(cities, job_titles, stores)
// @Success 200 {array} ReferenceItem
// @Failure 404 {object} map[string]interface{}
// @Router /reference/{kind} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := Kind(chi.URLParam(r, "kind"))

	items, err := h.Service.List(r.Context(), kind)
	switch {
	case errors.Is(err, ErrUnknownKind):
		h.WriteError(w, http.StatusNotFound, "unknown reference kind")
	case err != nil:
		h.Logger.Error("failed to list reference items", "kind", kind, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load reference data")
	default:
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"items": items,
		})
	}
}

// Add godoc
// @Summary Add a reference item
// @Description Adds a new item to a reference table. Admin only.
// @Tags reference
// @Accept json
// @Produce json
// @Param kind path string true "Reference kind" Enums(cities, job_titles, stores)
// @Param request body AddReferenceDTO true "Item to add"
// @Security BearerAuth
// @Success 201 {object} ReferenceItem
// @Failure 409 {object} map[string]interface{}
// @Router /reference/{kind} [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	kind := Kind(chi.URLParam(r, "kind"))

	var dto AddReferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.Add(r.Context(), kind, dto.Name, user.ID)
	switch {
	case errors.Is(err, ErrUnknownKind):
		h.WriteError(w, http.StatusNotFound, "unknown reference kind")
	case errors.Is(err, ErrEmptyName):
		h.WriteError(w, http.StatusBadRequest, "name is required")
	case errors.Is(err, ErrDuplicateName):
		h.WriteError(w, http.StatusConflict, "an item with this name already exists")
	case err != nil:
		h.Logger.Error("failed to add reference item", "kind", kind, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to add reference item")
	default:
		h.WriteJSON(w, http.StatusCreated, item)
	}
}

// Remove godoc
// @Summary Remove a reference item
// @Description Removes an item from a reference table. Admin only.
// @Tags reference
// @Param kind path string true "Reference kind" Enums(cities, job_titles, stores)
// @Param id path int true "Item ID"
// @Security BearerAuth
// @Success 204
// @Router /reference/{kind}/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	kind := Kind(chi.URLParam(r, "kind"))
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	err = h.Service.Remove(r.Context(), kind, id, user.ID)
	switch {
	case errors.Is(err, ErrUnknownKind):
		h.WriteError(w, http.StatusNotFound, "unknown reference kind")
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "reference item not found")
	case err != nil:
		h.Logger.Error("failed to remove reference item", "kind", kind, "id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to remove reference item")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
