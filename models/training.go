package models

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// Training is a single practice session.
type Training struct {
	ID          string         `json:"id,omitempty"`
	Date        string         `json:"date,omitempty"`
	Modality    string         `json:"modality,omitempty"`
	TotalShots  int            `json:"totalShots"`
	TotalErrors int            `json:"totalErrors"`
	Errors      TrainingErrors `json:"errors"`
	Notes       string         `json:"notes"`

	// Accuracy is derived from TotalShots and TotalErrors on every write.
	Accuracy Percent `json:"accuracy"`

	// Timestamp is the creation instant; updates keep the original value.
	Timestamp string `json:"timestamp,omitempty"`
}

// TrainingErrors breaks TotalErrors down by kind.
type TrainingErrors struct {
	Banda          int `json:"banda"`
	Combinacion    int `json:"combinacion"`
	PosicionBlanca int `json:"posicionBlanca"`
	NoForzado      int `json:"noForzado"`
}

// Percent is a percentage with one decimal. Older documents store it as a
// string ("85.0"); it always encodes as a number.
type Percent float64

// UnmarshalJSON accepts a number or a numeric string.
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f, _ := Number(raw)
	*p = Percent(f)
	return nil
}

// Ratio returns part/total*100 rounded to one decimal, or 0 when total is 0.
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round1(part / total * 100)
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// TrainingAccuracy is the share of successful shots, in percent.
func TrainingAccuracy(totalShots, totalErrors int) float64 {
	return Ratio(float64(totalShots-totalErrors), float64(totalShots))
}

// DeriveTraining recomputes the derived fields of a training record in place.
func DeriveTraining(rec Record) {
	shots := Int(rec["totalShots"])
	errs := Int(rec["totalErrors"])
	rec["accuracy"] = TrainingAccuracy(shots, errs)
}

// TrainingStats aggregates all training sessions of a document.
type TrainingStats struct {
	TotalTrainings int                         `json:"totalTrainings"`
	TotalShots     int                         `json:"totalShots"`
	TotalErrors    int                         `json:"totalErrors"`
	AccuracyRate   float64                     `json:"accuracyRate"`
	ErrorsByType   TrainingErrors              `json:"errorsByType"`
	ByModality     map[string]ModalityTraining `json:"byModality"`
}

// ModalityTraining is the per-modality slice of [TrainingStats].
type ModalityTraining struct {
	Trainings int     `json:"trainings"`
	Shots     int     `json:"shots"`
	Errors    int     `json:"errors"`
	Accuracy  float64 `json:"accuracy"`
}

// ComputeTrainingStats walks the trainings collection of doc. Malformed
// numeric fields count as zero.
func ComputeTrainingStats(doc Document) TrainingStats {
	stats := TrainingStats{ByModality: map[string]ModalityTraining{}}

	for _, rec := range doc.Records("trainings") {
		shots := Int(rec["totalShots"])
		errs := Int(rec["totalErrors"])

		stats.TotalTrainings++
		stats.TotalShots += shots
		stats.TotalErrors += errs

		if byType, ok := rec["errors"].(map[string]any); ok {
			stats.ErrorsByType.Banda += Int(byType["banda"])
			stats.ErrorsByType.Combinacion += Int(byType["combinacion"])
			stats.ErrorsByType.PosicionBlanca += Int(byType["posicionBlanca"])
			stats.ErrorsByType.NoForzado += Int(byType["noForzado"])
		}

		modality, _ := rec["modality"].(string)
		m := stats.ByModality[modality]
		m.Trainings++
		m.Shots += shots
		m.Errors += errs
		stats.ByModality[modality] = m
	}

	stats.AccuracyRate = TrainingAccuracy(stats.TotalShots, stats.TotalErrors)
	for name, m := range stats.ByModality {
		m.Accuracy = TrainingAccuracy(m.Shots, m.Errors)
		stats.ByModality[name] = m
	}

	return stats
}

// Modalities returns the modality names of s in lexical order.
func (s TrainingStats) Modalities() []string {
	names := make([]string, 0, len(s.ByModality))
	for name := range s.ByModality {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
