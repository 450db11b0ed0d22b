package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/models"
)

// IDGenerator produces record identifiers.
type IDGenerator interface {
	Generate() string
}

// recordKind describes how one collection's records are created and updated.
type recordKind struct {
	document   models.DocumentKind
	collection string

	// createdField holds the creation instant and is never overwritten.
	createdField string
	// updatedField, when set, is stamped on every update.
	updatedField string

	derive func(rec models.Record)
}

var (
	matchRecords = recordKind{
		document:     models.KindMatches,
		collection:   "matches",
		createdField: "timestamp",
	}
	tournamentRecords = recordKind{
		document:     models.KindMatches,
		collection:   "tournaments",
		createdField: "createdAt",
		updatedField: "updatedAt",
		derive:       models.DeriveTournament,
	}
	circuitRecords = recordKind{
		document:     models.KindMatches,
		collection:   "circuits",
		createdField: "createdAt",
		updatedField: "updatedAt",
	}
	trainingRecords = recordKind{
		document:     models.KindTrainings,
		collection:   "trainings",
		createdField: "timestamp",
		derive:       models.DeriveTraining,
	}
)

type recordService struct {
	coordinators map[models.DocumentKind]SyncCoordinator
	ids          IDGenerator
	now          func() time.Time

	logger *logger.Logger
}

// NewRecordService returns the [RecordService] working through coordinators.
func NewRecordService(coordinators map[models.DocumentKind]SyncCoordinator, ids IDGenerator, logger *logger.Logger) RecordService {
	return &recordService{
		coordinators: coordinators,
		ids:          ids,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *recordService) coordinator(kind models.DocumentKind) (SyncCoordinator, error) {
	c, ok := s.coordinators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}
	return c, nil
}

// ── Whole documents ──

func (s *recordService) GetData(ctx context.Context, kind models.DocumentKind) (models.Document, error) {
	c, err := s.coordinator(kind)
	if err != nil {
		return nil, err
	}
	return c.Read(ctx), nil
}

func (s *recordService) SaveData(ctx context.Context, kind models.DocumentKind, doc models.Document) (models.Document, error) {
	c, err := s.coordinator(kind)
	if err != nil {
		return nil, err
	}
	if kind == models.KindMatches {
		models.RecomputeCircuitPoints(doc)
	}
	return c.Save(ctx, doc)
}

// Reset clears the persisted document of kind. It requires both the
// explicit confirmation and the typed phrase, and never pushes.
func (s *recordService) Reset(ctx context.Context, kind models.DocumentKind, confirmed bool, phrase string) (models.Document, error) {
	log := logger.FromContext(ctx)

	c, err := s.coordinator(kind)
	if err != nil {
		return nil, err
	}
	if !confirmed || strings.TrimSpace(phrase) != models.ResetPhrase {
		log.Warn().Str("func", "recordService.Reset").Str("document", string(kind)).Msg("reset refused, confirmation missing")
		return nil, ErrResetNotConfirmed
	}

	if err = c.Reset(ctx); err != nil {
		log.Err(err).Str("func", "recordService.Reset").Str("document", string(kind)).Msg("error resetting document")
		return nil, err
	}

	log.Warn().Str("func", "recordService.Reset").Str("document", string(kind)).Msg("document reset")
	return c.Read(ctx), nil
}

// ── Matches ──

func (s *recordService) AddMatch(ctx context.Context, match models.Record) (models.Record, models.Document, error) {
	input, err := validateMatch(match, true)
	if err != nil {
		return nil, nil, err
	}

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		rec := s.add(doc, matchRecords, input)
		registerMatchNames(doc, rec)
		return rec, nil
	})
}

func (s *recordService) UpdateMatch(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error) {
	input, err := validateMatch(changes, false)
	if err != nil {
		return nil, nil, err
	}

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		rec, err := s.update(doc, matchRecords, id, input)
		if err != nil {
			return nil, err
		}
		registerMatchNames(doc, rec)
		return rec, nil
	})
}

func (s *recordService) DeleteMatch(ctx context.Context, id string) (models.Document, error) {
	_, doc, err := s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		return nil, remove(doc, matchRecords, id)
	})
	return doc, err
}

// ── Tournaments ──

func (s *recordService) AddTournament(ctx context.Context, tournament models.Record) (models.Record, models.Document, error) {
	input := withoutID(tournament)
	if name, _ := input["name"].(string); strings.TrimSpace(name) == "" {
		return nil, nil, fmt.Errorf("%w: tournament name is required", ErrInvalidRecord)
	}
	normalizeCircuitRef(input)

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		rec := s.add(doc, tournamentRecords, input)
		if _, ok := rec["matches"].([]any); !ok {
			rec["matches"] = []any{}
		}
		return rec, nil
	})
}

func (s *recordService) UpdateTournament(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error) {
	input := withoutID(changes)
	normalizeCircuitRef(input)

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		return s.update(doc, tournamentRecords, id, input)
	})
}

func (s *recordService) DeleteTournament(ctx context.Context, id string) (models.Document, error) {
	_, doc, err := s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		return nil, remove(doc, tournamentRecords, id)
	})
	return doc, err
}

// ── Circuits ──

func (s *recordService) AddCircuit(ctx context.Context, circuit models.Record) (models.Record, models.Document, error) {
	input := withoutID(circuit)
	typed, err := models.FromRecords[models.Circuit]([]models.Record{input})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if strings.TrimSpace(typed[0].Name) == "" {
		return nil, nil, fmt.Errorf("%w: circuit name is required", ErrInvalidRecord)
	}

	defaults := models.NewCircuitDefaults(typed[0], s.now())
	input["year"] = defaults.Year
	if _, ok := input["pointsSystem"].(map[string]any); !ok {
		points := make(map[string]any, len(defaults.PointsSystem))
		for result, p := range defaults.PointsSystem {
			points[result] = p
		}
		input["pointsSystem"] = points
	}

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		return s.add(doc, circuitRecords, input), nil
	})
}

func (s *recordService) UpdateCircuit(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error) {
	input := withoutID(changes)
	// derived from the tournaments
	delete(input, "totalPoints")
	delete(input, "tournaments")

	return s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		return s.update(doc, circuitRecords, id, input)
	})
}

// DeleteCircuit removes the circuit and clears the reference of every
// tournament that counted for it.
func (s *recordService) DeleteCircuit(ctx context.Context, id string) (models.Document, error) {
	_, doc, err := s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		if err := remove(doc, circuitRecords, id); err != nil {
			return nil, err
		}
		models.UnlinkCircuit(doc, id)
		return nil, nil
	})
	return doc, err
}

// ── Matches document extras ──

// UpdateModalityStats replaces the manual modality counters and stamps
// lastUpdated.
func (s *recordService) UpdateModalityStats(ctx context.Context, stats models.ModalityStatsRequest) (models.Document, error) {
	_, doc, err := s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		counters := make(map[string]any, len(stats)+1)
		for category, st := range stats {
			counters[category] = map[string]any{
				"matchesPlayed": st.MatchesPlayed,
				"matchesWon":    st.MatchesWon,
				"gamesPlayed":   st.GamesPlayed,
				"gamesWon":      st.GamesWon,
			}
		}
		counters["lastUpdated"] = s.now().UTC().Format(time.RFC3339)
		doc["modalityStats"] = counters
		return nil, nil
	})
	return doc, err
}

func (s *recordService) ModalityAutoStats(ctx context.Context) map[string]models.ModalityStats {
	c, err := s.coordinator(models.KindMatches)
	if err != nil {
		return nil
	}
	return models.ModalityAutoStats(c.Read(ctx))
}

func (s *recordService) AddMaterial(ctx context.Context, material string) (models.Document, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, fmt.Errorf("%w: material is required", ErrInvalidRecord)
	}

	_, doc, err := s.mutate(ctx, models.KindMatches, func(doc models.Document) (models.Record, error) {
		doc.AddString("materials", material)
		return nil, nil
	})
	return doc, err
}

// ── Trainings ──

func (s *recordService) AddTraining(ctx context.Context, training models.Record) (models.Record, models.Document, error) {
	input, err := validateTraining(training)
	if err != nil {
		return nil, nil, err
	}

	return s.mutate(ctx, models.KindTrainings, func(doc models.Document) (models.Record, error) {
		rec := s.add(doc, trainingRecords, input)
		sortCollection(doc, trainingRecords.collection)
		return rec, nil
	})
}

func (s *recordService) UpdateTraining(ctx context.Context, id string, changes models.Record) (models.Record, models.Document, error) {
	input := withoutID(changes)

	return s.mutate(ctx, models.KindTrainings, func(doc models.Document) (models.Record, error) {
		rec, err := s.update(doc, trainingRecords, id, input)
		if err != nil {
			return nil, err
		}
		if _, err = validateTraining(rec); err != nil {
			return nil, err
		}
		sortCollection(doc, trainingRecords.collection)
		return rec, nil
	})
}

func (s *recordService) DeleteTraining(ctx context.Context, id string) (models.Document, error) {
	_, doc, err := s.mutate(ctx, models.KindTrainings, func(doc models.Document) (models.Record, error) {
		return nil, remove(doc, trainingRecords, id)
	})
	return doc, err
}

func (s *recordService) TrainingStats(ctx context.Context) models.TrainingStats {
	c, err := s.coordinator(models.KindTrainings)
	if err != nil {
		return models.TrainingStats{ByModality: map[string]models.ModalityTraining{}}
	}
	return models.ComputeTrainingStats(c.Read(ctx))
}

// ── Helpers ──

// mutate applies fn to the current document of kind and saves the result
// under the coordinator's write lock, so concurrent mutations of one
// document are applied one after another. Nothing is written when fn fails.
func (s *recordService) mutate(ctx context.Context, kind models.DocumentKind, fn func(doc models.Document) (models.Record, error)) (models.Record, models.Document, error) {
	log := logger.FromContext(ctx)

	c, err := s.coordinator(kind)
	if err != nil {
		return nil, nil, err
	}

	var rec models.Record
	saved, err := c.Update(ctx, func(doc models.Document) (models.Document, error) {
		out, err := fn(doc)
		if err != nil {
			log.Debug().Err(err).Str("func", "recordService.mutate").Str("document", string(kind)).Msg("mutation rejected")
			return nil, err
		}
		if kind == models.KindMatches {
			models.RecomputeCircuitPoints(doc)
		}
		rec = out
		return doc, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, saved, nil
}

// add appends a copy of input to the kind's collection under a fresh id.
func (s *recordService) add(doc models.Document, kind recordKind, input models.Record) models.Record {
	rec := cloneRecord(input)
	rec[models.RecordIDField] = s.ids.Generate()
	rec[kind.createdField] = s.now().UTC().Format(time.RFC3339)
	if kind.derive != nil {
		kind.derive(rec)
	}

	doc[kind.collection] = append(asArray(doc[kind.collection]), rec)
	return rec
}

// update overlays changes onto the record with id, keeping its id and its
// creation instant.
func (s *recordService) update(doc models.Document, kind recordKind, id string, changes models.Record) (models.Record, error) {
	idx := doc.IndexOf(kind.collection, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrRecordNotFound, kind.collection, id)
	}

	rec := asArray(doc[kind.collection])[idx].(map[string]any)
	for field, value := range cloneRecord(changes) {
		if field == models.RecordIDField || field == kind.createdField {
			continue
		}
		rec[field] = value
	}
	if kind.updatedField != "" {
		rec[kind.updatedField] = s.now().UTC().Format(time.RFC3339)
	}
	if kind.derive != nil {
		kind.derive(rec)
	}

	return rec, nil
}

func remove(doc models.Document, kind recordKind, id string) error {
	idx := doc.IndexOf(kind.collection, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s %s", ErrRecordNotFound, kind.collection, id)
	}
	doc[kind.collection] = slices.Delete(asArray(doc[kind.collection]), idx, idx+1)
	return nil
}

func registerMatchNames(doc models.Document, rec models.Record) {
	for _, field := range []string{"player1", "player2"} {
		if name, ok := rec[field].(string); ok {
			doc.AddString("players", strings.TrimSpace(name))
		}
	}
	if material, ok := rec["material1"].(string); ok {
		doc.AddString("materials", strings.TrimSpace(material))
	}
}

// validateMatch checks that input decodes as a match. On creation both
// players are required.
func validateMatch(input models.Record, create bool) (models.Record, error) {
	input = withoutID(input)
	typed, err := models.FromRecords[models.Match]([]models.Record{input})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	m := typed[0]
	if create && (strings.TrimSpace(m.Player1) == "" || strings.TrimSpace(m.Player2) == "") {
		return nil, fmt.Errorf("%w: both players are required", ErrInvalidRecord)
	}
	return input, nil
}

// validateTraining checks the shot counters of a training.
func validateTraining(input models.Record) (models.Record, error) {
	input = withoutID(input)
	typed, err := models.FromRecords[models.Training]([]models.Record{input})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	t := typed[0]
	if t.TotalShots < 0 || t.TotalErrors < 0 || t.TotalErrors > t.TotalShots {
		return nil, fmt.Errorf("%w: errors must be between 0 and the number of shots", ErrInvalidRecord)
	}
	return input, nil
}

// normalizeCircuitRef turns an empty circuit reference into null.
func normalizeCircuitRef(rec models.Record) {
	if ref, ok := rec["circuit"].(string); ok && strings.TrimSpace(ref) == "" {
		rec["circuit"] = nil
	}
}

func sortCollection(doc models.Document, collection string) {
	records := doc.Records(collection)
	SortByDate(records, "date")
	doc.SetRecords(collection, records)
}

func withoutID(rec models.Record) models.Record {
	out := cloneRecord(rec)
	delete(out, models.RecordIDField)
	return out
}

func cloneRecord(rec models.Record) models.Record {
	if rec == nil {
		return models.Record{}
	}
	return models.Record(models.Document(rec).Clone())
}
