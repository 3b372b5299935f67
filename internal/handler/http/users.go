package http

import (
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	user, err := h.services.UserService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.me", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ToPublic(user), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := utils.DecodeJSON(r, &upd); err != nil {
		writeError(w, r, "*Handler.updateProfile", err)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		writeError(w, r, "*Handler.updateProfile", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ToPublic(user), http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.services.UserService.Delete(r.Context(), userID); err != nil {
		writeError(w, r, "*Handler.deleteAccount", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.Get(r.Context(), targetID)
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ToPublic(user), http.StatusOK)
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.services.UserService.Follow(r.Context(), userID, targetID); err != nil {
		writeError(w, r, "*Handler.follow", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.services.UserService.Unfollow(r.Context(), userID, targetID); err != nil {
		writeError(w, r, "*Handler.unfollow", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setUserType(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var change models.UserTypeChange
	if err := utils.DecodeJSON(r, &change); err != nil {
		writeError(w, r, "*Handler.setUserType", err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.services.UserService.SetUserType(r.Context(), actorID, targetID, change.UserType); err != nil {
		writeError(w, r, "*Handler.setUserType", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUserID reads and checks the {id} URL parameter. On failure it has
// already written a 400.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !utils.IsUUID(id) {
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgInvalidUserID}, http.StatusBadRequest)
		return "", false
	}
	return id, true
}
