package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json"))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/api/info", h.getAppInfo)
	router.Get("/api/version", h.getAppVersion)

	// sync control
	router.Get("/api/sync/status", h.syncStatus)
	router.Put("/api/sync/credentials", h.setCredentials)
	router.Post("/api/sync/{kind}/push", h.push)
	router.Post("/api/sync/{kind}/pull", h.pull)

	// matches document
	router.Post("/api/matches/records", h.addRecord(h.records.AddMatch))
	router.Put("/api/matches/records/{id}", h.updateRecord(h.records.UpdateMatch))
	router.Delete("/api/matches/records/{id}", h.deleteRecord(h.records.DeleteMatch))
	router.Get("/api/matches/modality-stats/auto", h.modalityAutoStats)
	router.Put("/api/matches/modality-stats", h.updateModalityStats)
	router.Post("/api/matches/materials", h.addMaterial)

	router.Post("/api/tournaments", h.addRecord(h.records.AddTournament))
	router.Put("/api/tournaments/{id}", h.updateRecord(h.records.UpdateTournament))
	router.Delete("/api/tournaments/{id}", h.deleteRecord(h.records.DeleteTournament))

	router.Post("/api/circuits", h.addRecord(h.records.AddCircuit))
	router.Put("/api/circuits/{id}", h.updateRecord(h.records.UpdateCircuit))
	router.Delete("/api/circuits/{id}", h.deleteRecord(h.records.DeleteCircuit))

	// trainings document
	router.Post("/api/trainings/records", h.addRecord(h.records.AddTraining))
	router.Put("/api/trainings/records/{id}", h.updateRecord(h.records.UpdateTraining))
	router.Delete("/api/trainings/records/{id}", h.deleteRecord(h.records.DeleteTraining))
	router.Get("/api/trainings/stats", h.trainingStats)

	// whole documents
	router.Get("/api/{kind}", h.getData)
	router.Put("/api/{kind}", h.saveData)
	router.Delete("/api/{kind}", h.resetData)

	return router
}
