package http

import (
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header and hands it to
// [service.AuthService.Authenticate], which checks the signature and that
// the token is still recorded for its user. On success the user ID and the
// raw token are stored in the request context via [utils.WithAuth].
//
// Every rejection is a 401 with the same JSON body, so the response does
// not reveal whether the token was malformed, forged, expired or revoked.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			writeUnauthorized(w)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(ErrInvalidAuthorizationHeader).Send()
			writeUnauthorized(w)
			return
		}

		token, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAuth(r.Context(), token.UserID, tokenString)))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgTokenIsExpiredOrInvalid}, http.StatusUnauthorized)
}
