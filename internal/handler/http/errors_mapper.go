package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type errorMapping struct {
	status  int
	message string
}

// errorStatusList is checked in order; the first match wins.
var errorStatusList = []struct {
	target error
	errorMapping
}{
	{service.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, app.MsgUnableToLogin}},
	{service.ErrTokenIsExpiredOrInvalid, errorMapping{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrForbidden, errorMapping{http.StatusForbidden, app.MsgAccessDenied}},
	{service.ErrNothingToUpdate, errorMapping{http.StatusBadRequest, app.MsgNothingToUpdate}},
	{crypto.ErrPasswordTooLong, errorMapping{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{utils.ErrInvalidJSONBody, errorMapping{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{store.ErrEmailAlreadyExists, errorMapping{http.StatusConflict, app.MsgEmailAlreadyExists}},
	{store.ErrVersionConflict, errorMapping{http.StatusConflict, app.MsgVersionConflict}},
	{store.ErrAlreadyFollowing, errorMapping{http.StatusConflict, app.MsgAlreadyFollowing}},
	{store.ErrUserNotFound, errorMapping{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrNotFollowing, errorMapping{http.StatusNotFound, app.MsgNotFollowing}},
	{store.ErrSelfFollow, errorMapping{http.StatusBadRequest, app.MsgSelfFollow}},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorStatusList {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and writes the matching JSON error body. Validation
// failures carry their per-field reasons.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		log.Debug().Err(err).Str("func", funcName).Msg("validation failed")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgValidationFailed, Fields: verr.Fields}, http.StatusBadRequest)
		return
	}

	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
