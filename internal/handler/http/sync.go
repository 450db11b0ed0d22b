package http

import (
	"net/http"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/utils"
	"github.com/MKhiriev/cue-sync/models"
)

const syncErrorHeader = "X-Sync-Error"

// push answers with the sync status after the push finished. A push dropped
// because another operation was running is not an error.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	kind := kindParam(r)

	if err := h.sync.Push(r.Context(), kind); err != nil {
		log.Err(err).Str("func", "*Handler.push").Str("document", string(kind)).Msg("push failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.sync.Status(r.Context()), http.StatusOK)
}

// pull answers with the resulting local document. When the remote part
// failed the document is still sent, with the failure status and the error
// text in the X-Sync-Error header.
func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	kind := kindParam(r)

	doc, err := h.sync.Pull(r.Context(), kind)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Str("document", string(kind)).Msg("pull failed")
		if doc == nil {
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		w.Header().Set(syncErrorHeader, err.Error())
		utils.WriteJSON(w, doc, statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.sync.Status(r.Context()), http.StatusOK)
}

func (h *Handler) setCredentials(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := decodeBody(r, &creds); err != nil {
		log.Err(err).Str("func", "*Handler.setCredentials").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if !creds.Configured() {
		http.Error(w, "username, repo and token are required", http.StatusBadRequest)
		return
	}

	if err := h.sync.SetCredentials(r.Context(), creds); err != nil {
		log.Err(err).Str("func", "*Handler.setCredentials").Msg("error saving credentials")
		http.Error(w, "error saving credentials", statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.sync.Status(r.Context()), http.StatusOK)
}
