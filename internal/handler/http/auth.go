package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	user, token, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	writeAuthResponse(w, user, token, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("user successfully logged in")
	writeAuthResponse(w, user, token, http.StatusOK)
}

// writeAuthResponse sends the token both as a bearer header and in the body.
func writeAuthResponse(w http.ResponseWriter, user models.User, token models.Token, status int) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, models.AuthResponse{User: models.ToPublic(user), Token: token.SignedString}, status)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	token, _ := utils.GetTokenFromContext(ctx)

	if err := h.services.AuthService.Logout(ctx, userID, token); err != nil {
		writeError(w, r, "*Handler.logout", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	if _, err := h.services.AuthService.LogoutAll(ctx, userID); err != nil {
		writeError(w, r, "*Handler.logoutAll", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
