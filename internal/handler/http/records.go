package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/utils"
	"github.com/MKhiriev/cue-sync/models"
)

type (
	addFunc    func(ctx context.Context, rec models.Record) (models.Record, models.Document, error)
	updateFunc func(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error)
	deleteFunc func(ctx context.Context, id string) (models.Document, error)
)

func (h *Handler) addRecord(add addFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var input models.Record
		if err := decodeBody(r, &input); err != nil || input == nil {
			log.Err(err).Str("func", "*Handler.addRecord").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		rec, doc, err := add(r.Context(), input)
		if err != nil {
			log.Err(err).Str("func", "*Handler.addRecord").Msg("error adding record")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.RecordResponse{Record: rec, Document: doc}, http.StatusCreated)
	}
}

func (h *Handler) updateRecord(update updateFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var changes models.Record
		if err := decodeBody(r, &changes); err != nil || changes == nil {
			log.Err(err).Str("func", "*Handler.updateRecord").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		rec, doc, err := update(r.Context(), chi.URLParam(r, "id"), changes)
		if err != nil {
			log.Err(err).Str("func", "*Handler.updateRecord").Msg("error updating record")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.RecordResponse{Record: rec, Document: doc}, http.StatusOK)
	}
}

func (h *Handler) deleteRecord(remove deleteFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		id := chi.URLParam(r, "id")

		doc, err := remove(r.Context(), id)
		if err != nil {
			log.Err(err).Str("func", "*Handler.deleteRecord").Str("id", id).Msg("error deleting record")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.DeleteResponse{ID: id, Document: doc}, http.StatusOK)
	}
}

func (h *Handler) updateModalityStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var stats models.ModalityStatsRequest
	if err := decodeBody(r, &stats); err != nil {
		log.Err(err).Str("func", "*Handler.updateModalityStats").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.records.UpdateModalityStats(r.Context(), stats)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateModalityStats").Msg("error updating modality stats")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) modalityAutoStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.records.ModalityAutoStats(r.Context()), http.StatusOK)
}

func (h *Handler) addMaterial(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.MaterialRequest
	if err := decodeBody(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.addMaterial").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.records.AddMaterial(r.Context(), req.Material)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addMaterial").Msg("error adding material")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) trainingStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.records.TrainingStats(r.Context()), http.StatusOK)
}
