package http

import (
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, models.VersionResponse{
		Version:     h.services.AppInfoService.GetAppVersion(r.Context()),
		BuildDate:   h.buildInfo.BuildDate(),
		BuildCommit: h.buildInfo.BuildCommit(),
	}, http.StatusOK)
}
