// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"reflect"
	"sort"
	"time"

	"github.com/MKhiriev/cue-sync/models"
)

// dateLayouts are the date formats found in stored records, most specific
// first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	time.DateOnly,
}

// MergeForPush folds remote into local before local is written back to the
// remote. Every remote record whose id is not held locally is appended to
// its collection, records held by both sides keep the local copy, and
// auxiliary lists become the union of both sides with local order first.
// Date-bearing collections are then ordered newest first.
//
// The returned flag reports whether anything from remote was added, which
// obliges the caller to refresh its full view. Neither input is modified.
func MergeForPush(schema models.Schema, local, remote models.Document) (models.Document, bool) {
	merged := schema.Normalize(local.Clone())
	if remote == nil {
		return merged, false
	}
	remote = schema.Normalize(remote.Clone())

	changed := false
	for _, c := range schema.Collections {
		items, added := unionRecords(asArray(merged[c.Key]), asArray(remote[c.Key]))
		if added > 0 {
			changed = true
		}
		if c.DateField != "" {
			sortItemsByDate(items, c.DateField)
		}
		merged[c.Key] = items
	}

	for _, key := range schema.AuxLists {
		items, added := unionStrings(asArray(merged[key]), asArray(remote[key]))
		if added > 0 {
			changed = true
		}
		merged[key] = items
	}

	return merged, changed
}

// MergeForPull decides whether a freshly fetched remote document should
// replace local state.
//
// Local stays authoritative, and is returned with adopted == false, while it
// holds at least as many records as remote in every primary collection.
// Otherwise the result takes, per primary collection, the larger side
// wholesale (ties keep local); other collections are id-unioned with local
// winning; auxiliary lists are set-unioned; counters stay local unless the
// local ones were never used; any other top-level field is taken from local
// when present there, else from remote.
func MergeForPull(schema models.Schema, local, remote models.Document) (models.Document, bool) {
	local = schema.Normalize(local)
	if remote == nil {
		return local, false
	}
	remote = schema.Normalize(remote.Clone())

	if localIsAuthoritative(schema, local, remote) {
		return local, false
	}

	merged := local.Clone()

	for _, c := range schema.Collections {
		localItems, remoteItems := asArray(merged[c.Key]), asArray(remote[c.Key])
		if c.Primary {
			if len(remoteItems) > len(localItems) {
				merged[c.Key] = remoteItems
			}
			continue
		}
		merged[c.Key], _ = unionRecords(localItems, remoteItems)
	}

	for _, key := range schema.AuxLists {
		merged[key], _ = unionStrings(asArray(merged[key]), asArray(remote[key]))
	}

	for _, c := range schema.Counters {
		if counterIsZero(c, merged[c.Key]) && !counterIsZero(c, remote[c.Key]) {
			merged[c.Key] = remote[c.Key]
		}
	}

	for key, value := range remote {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}

	return merged, true
}

// SortByDate orders records by field, newest first. The sort is stable and
// records whose date cannot be parsed go last.
func SortByDate(records []models.Record, field string) {
	sort.SliceStable(records, func(i, j int) bool {
		return dateBefore(records[j][field], records[i][field])
	})
}

func sortItemsByDate(items []any, field string) {
	sort.SliceStable(items, func(i, j int) bool {
		return dateBefore(fieldOf(items[j], field), fieldOf(items[i], field))
	})
}

// dateBefore reports whether a sorts strictly before b in chronological
// order, treating an unparsable date as older than any valid one.
func dateBefore(a, b any) bool {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okB:
		return true
	default:
		return false
	}
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func localIsAuthoritative(schema models.Schema, local, remote models.Document) bool {
	for _, key := range schema.PrimaryCollections() {
		if local.Len(key) < remote.Len(key) {
			return false
		}
	}
	return true
}

// unionRecords appends to local every remote record it does not already
// hold, matching by id. Remote records without an id are appended unless an
// identical record exists locally. Non-object remote entries are dropped.
func unionRecords(local, remote []any) ([]any, int) {
	out := make([]any, 0, len(local)+len(remote))
	out = append(out, local...)

	seen := make(map[string]struct{}, len(local))
	for _, item := range local {
		if rec, ok := item.(map[string]any); ok {
			if id, ok := models.RecordID(rec); ok {
				seen[id] = struct{}{}
			}
		}
	}

	added := 0
	for _, item := range remote {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, ok := models.RecordID(rec)
		if !ok {
			if containsEqual(out, rec) {
				continue
			}
			out = append(out, rec)
			added++
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, rec)
		added++
	}

	return out, added
}

func unionStrings(local, remote []any) ([]any, int) {
	out := make([]any, 0, len(local)+len(remote))
	out = append(out, local...)

	seen := make(map[string]struct{}, len(local))
	for _, item := range local {
		if s, ok := item.(string); ok {
			seen[s] = struct{}{}
		}
	}

	added := 0
	for _, item := range remote {
		s, ok := item.(string)
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		added++
	}

	return out, added
}

func counterIsZero(spec models.CounterSpec, v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return true
	}
	for _, cat := range spec.Categories {
		fields, _ := obj[cat].(map[string]any)
		for _, f := range spec.Fields {
			if n, ok := models.Number(fields[f]); ok && n != 0 {
				return false
			}
		}
	}
	return true
}

func containsEqual(items []any, rec map[string]any) bool {
	for _, item := range items {
		if reflect.DeepEqual(item, rec) {
			return true
		}
	}
	return false
}

func asArray(v any) []any {
	arr, _ := v.([]any)
	return arr
}

func fieldOf(item any, field string) any {
	rec, _ := item.(map[string]any)
	return rec[field]
}
