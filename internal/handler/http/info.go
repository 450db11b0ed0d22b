package http

import (
	"net/http"

	"github.com/MKhiriev/cue-sync/internal/utils"
)

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, h.info.GetAppVersion(r.Context()), http.StatusOK)
}

func (h *Handler) getAppInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.info.GetAppInfo(r.Context()), http.StatusOK)
}
