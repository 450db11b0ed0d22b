package http

import (
	"net/http"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/utils"
	"github.com/MKhiriev/cue-sync/models"
)

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := h.records.GetData(r.Context(), kindParam(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getData").Msg("error reading document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) saveData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var doc models.Document
	if err := decodeBody(r, &doc); err != nil || doc == nil {
		log.Err(err).Str("func", "*Handler.saveData").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.records.SaveData(r.Context(), kindParam(r), doc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveData").Msg("error saving document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

// resetData clears a document. The caller must pass confirm=true and the
// confirmation phrase in the body.
func (h *Handler) resetData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ResetRequest
	if err := decodeBody(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.resetData").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	doc, err := h.records.Reset(r.Context(), kindParam(r), confirmed, req.Phrase)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resetData").Msg("error resetting document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}
