package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/utils"
	"github.com/MKhiriev/go-account-service/models"
)

// me returns the profile of the authenticated caller.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, caller, http.StatusOK)
}

// updateMe applies a partial profile update to the caller's own account.
// The active flag is not toggleable on this route.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(ctx, caller.ID, update, false)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, updatedUser, http.StatusOK)
}

// listUsers returns one page of accounts. Admin only.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 0)

	list, err := h.services.UserService.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

// getUser returns the account with the id from the URL. Admin only.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromURL(r)
	if err != nil {
		h.writeError(w, r, "invalid user id", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser applies a partial update to an arbitrary account, including the
// active flag. Admin only.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		h.writeError(w, r, "invalid user id", http.StatusUnprocessableEntity)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(ctx, id, update, true)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, updatedUser, http.StatusOK)
}

// deleteUser removes an account. Admin only; self-deletion is rejected.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := userIDFromURL(r)
	if err != nil {
		h.writeError(w, r, "invalid user id", http.StatusUnprocessableEntity)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, caller.ID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userIDFromURL parses the {id} URL parameter of /users/{id} routes.
func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return value
}
