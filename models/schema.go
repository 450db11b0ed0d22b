// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "maps"

// DocumentKind names one document shape. It doubles as the path segment of
// the local API and as a metrics label.
type DocumentKind string

const (
	// KindMatches is the shared document holding matches, tournaments and
	// circuits together with players, materials and modality stats.
	KindMatches DocumentKind = "matches"

	// KindTrainings is the document holding training sessions.
	KindTrainings DocumentKind = "trainings"
)

// CollectionSpec describes one array of records inside a document.
type CollectionSpec struct {
	// Key is the top-level JSON field holding the array.
	Key string

	// DateField, when set, is the record field the collection is ordered by
	// (newest first) after a merge.
	DateField string

	// Primary marks a collection that takes part in the pull authority
	// heuristic: local stays authoritative while it holds at least as many
	// records as the remote copy in every primary collection.
	Primary bool
}

// CounterSpec describes an aggregate-counter object keyed by category,
// e.g. modalityStats.bola8.matchesPlayed.
type CounterSpec struct {
	Key        string
	Categories []string
	Fields     []string
}

// Schema is the static description of one document shape. Everything the
// normalizer, the merge policy and the coordinator need to know about a
// document lives here, so one generic engine serves every shape.
type Schema struct {
	// Kind identifies the document shape.
	Kind DocumentKind

	// StorageKey is the Local Store key the document is persisted under.
	StorageKey string

	// RemotePath is the path of the document inside the remote repository.
	RemotePath string

	// Collections are the record arrays of the document.
	Collections []CollectionSpec

	// AuxLists are arrays of unique strings (players, materials).
	AuxLists []string

	// Counters are aggregate-counter objects.
	Counters []CounterSpec

	// Scalars are top-level defaults installed when absent.
	Scalars map[string]any
}

// MatchesSchema describes the shared matches document.
var MatchesSchema = Schema{
	Kind:       KindMatches,
	StorageKey: "shared_matches_data",
	RemotePath: "appx/data.json",
	Collections: []CollectionSpec{
		{Key: "matches", DateField: "date", Primary: true},
		{Key: "tournaments", DateField: "date", Primary: true},
		{Key: "circuits"},
	},
	AuxLists: []string{"players", "materials"},
	Counters: []CounterSpec{
		{
			Key:        "modalityStats",
			Categories: []string{"bola8", "bola9", "bola10"},
			Fields:     []string{"matchesPlayed", "matchesWon", "gamesPlayed", "gamesWon"},
		},
	},
}

// TrainingsSchema describes the trainings document.
var TrainingsSchema = Schema{
	Kind:       KindTrainings,
	StorageKey: "xisco_trainings_data",
	RemotePath: "trainings.json",
	Collections: []CollectionSpec{
		{Key: "trainings", DateField: "date", Primary: true},
	},
	Scalars: map[string]any{"version": "1.0"},
}

// Schemas lists every known document shape.
func Schemas() []Schema {
	return []Schema{MatchesSchema, TrainingsSchema}
}

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind DocumentKind) (Schema, bool) {
	for _, s := range Schemas() {
		if s.Kind == kind {
			return s, true
		}
	}
	return Schema{}, false
}

// PrimaryCollections returns the keys of the primary collections.
func (s Schema) PrimaryCollections() []string {
	var keys []string
	for _, c := range s.Collections {
		if c.Primary {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Empty returns a normalized document with no records.
func (s Schema) Empty() Document {
	return s.Normalize(nil)
}

// Normalize fills in every structural field the schema requires and leaves
// everything else as is. Collections and auxiliary lists that are missing or
// not arrays become empty arrays, counter objects gain any missing category
// zero-valued, absent scalars get their default.
//
// The input is not modified. Normalize(Normalize(x)) equals Normalize(x).
func (s Schema) Normalize(partial Document) Document {
	doc := make(Document, len(partial)+len(s.Collections)+len(s.AuxLists))
	maps.Copy(doc, partial)

	for _, c := range s.Collections {
		doc[c.Key] = ensureArray(doc[c.Key])
	}
	for _, key := range s.AuxLists {
		doc[key] = ensureArray(doc[key])
	}
	for _, c := range s.Counters {
		doc[c.Key] = c.normalize(doc[c.Key])
	}
	for key, def := range s.Scalars {
		if _, ok := doc[key]; !ok {
			doc[key] = def
		}
	}

	return doc
}

// Zero returns a zero-valued counter structure for one category.
func (c CounterSpec) Zero() map[string]any {
	out := make(map[string]any, len(c.Fields))
	for _, f := range c.Fields {
		out[f] = 0
	}
	return out
}

func (c CounterSpec) normalize(v any) map[string]any {
	existing, ok := v.(map[string]any)
	out := make(map[string]any, len(c.Categories))
	if ok {
		maps.Copy(out, existing)
	}
	for _, cat := range c.Categories {
		if _, ok := out[cat].(map[string]any); !ok {
			out[cat] = c.Zero()
		}
	}
	return out
}

func ensureArray(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{}
}
