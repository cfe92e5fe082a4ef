package user

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

// Create godoc
// @Summary Create a dashboard account
// @Description Creates a user with an access record and optional grants. A password is generated when none is supplied. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserDTO true "Account to create"
// @Security BearerAuth
// @Success 201 {object} CreatedAccount
// @Failure 409 {object} map[string]interface{}
// @Router /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateAccount(r.Context(), actor.ID, dto)
	switch {
	case errors.Is(err, ErrEmailTaken):
		h.WriteError(w, http.StatusConflict, "email already registered")
	case err != nil:
		h.Logger.Error("failed to create account", "error", err)
		h.HandleServiceError(w, err)
	default:
		h.WriteJSON(w, http.StatusCreated, created)
	}
}

// List godoc
// @Summary List dashboard accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Account
// @Router /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.ListAccounts(r.Context())
	if err != nil {
		h.Logger.Error("failed to list accounts", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load accounts")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": accounts,
	})
}

// ToggleActive godoc
// @Summary Activate or deactivate an account
// @Tags users
// @Accept json
// @Param id path int true "User ID"
// @Param request body ToggleActiveDTO true "New active state"
// @Security BearerAuth
// @Success 204
// @Router /users/{id}/active [patch]
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actor, userID, ok := h.actorAndTarget(w, r)
	if !ok {
		return
	}

	var dto ToggleActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.Service.ToggleActive(r.Context(), actor.ID, userID, dto.IsActive)
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "user not found")
	case err != nil:
		h.Logger.Error("failed to toggle account", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update account")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateCities godoc
// @Summary Replace a user's city grants
// @Tags users
// @Accept json
// @Param id path int true "User ID"
// @Param request body UpdateGrantsDTO true "Complete replacement set"
// @Security BearerAuth
// @Success 204
// @Router /users/{id}/cities [put]
func (h *Handler) UpdateCities(w http.ResponseWriter, r *http.Request) {
	actor, userID, ok := h.actorAndTarget(w, r)
	if !ok {
		return
	}

	var dto UpdateGrantsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateCities(r.Context(), actor.ID, userID, dto.Values); err != nil {
		h.Logger.Error("failed to update city grants", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update city grants")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStores godoc
// @Summary Replace a user's store grants
// @Tags users
// @Accept json
// @Param id path int true "User ID"
// @Param request body UpdateGrantsDTO true "Complete replacement set"
// @Security BearerAuth
// @Success 204
// @Router /users/{id}/stores [put]
func (h *Handler) UpdateStores(w http.ResponseWriter, r *http.Request) {
	actor, userID, ok := h.actorAndTarget(w, r)
	if !ok {
		return
	}

	var dto UpdateGrantsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateStores(r.Context(), actor.ID, userID, dto.Values); err != nil {
		h.Logger.Error("failed to update store grants", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update store grants")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) actorAndTarget(w http.ResponseWriter, r *http.Request) (*internal.SessionUser, int64, bool) {
	actor, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, 0, false
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return nil, 0, false
	}

	return actor, userID, true
}
