// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Document is the single synchronized aggregate of one document shape.
// It is kept as a generic JSON object so that fields unknown to this version
// of the application survive a read-modify-write cycle untouched.
//
// Top-level values are whatever encoding/json produces when decoding with
// UseNumber: []any for collections, map[string]any for objects,
// json.Number for numbers.
type Document map[string]any

// Record is one entry of a collection inside a [Document].
type Record = map[string]any

// RecordIDField is the JSON field that identifies a record within its
// collection.
const RecordIDField = "id"

// DecodeDocument parses raw JSON text into a Document. Numbers are kept as
// json.Number so that integer identifiers are not rounded through float64.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode document: %w", ErrNotAnObject)
	}

	return doc, nil
}

// Encode serialises the document as compact JSON.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// EncodeIndent serialises the document as JSON indented with two spaces,
// the layout used for the remote copy.
func (d Document) EncodeIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Clone returns a deep copy of d produced by an encode/decode round trip.
// The copy shares no maps or slices with d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	raw, err := d.Encode()
	if err != nil {
		return cloneValue(d).(map[string]any)
	}
	out, err := DecodeDocument(raw)
	if err != nil {
		return cloneValue(d).(map[string]any)
	}
	return out
}

// Records returns the records of collection key. Non-object entries are
// skipped. A missing or non-array collection yields nil.
func (d Document) Records(key string) []Record {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Len reports the number of entries in collection key, or 0 when the
// collection is missing or not an array.
func (d Document) Len(key string) int {
	items, ok := d[key].([]any)
	if !ok {
		return 0
	}
	return len(items)
}

// SetRecords replaces collection key with records.
func (d Document) SetRecords(key string, records []Record) {
	items := make([]any, 0, len(records))
	for _, rec := range records {
		items = append(items, rec)
	}
	d[key] = items
}

// Strings returns the string entries of list key, in order.
func (d Document) Strings(key string) []string {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AddString appends value to list key unless it is empty or already present.
// It reports whether the list changed.
func (d Document) AddString(key, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	items, _ := d[key].([]any)
	for _, item := range items {
		if s, ok := item.(string); ok && s == value {
			return false
		}
	}
	d[key] = append(items, value)
	return true
}

// RecordID returns the canonical string form of the record's identifier.
// Identifiers may be strings or integers; both compare by their decimal or
// literal text, so 42 and "42" denote the same record.
func RecordID(rec Record) (string, bool) {
	if rec == nil {
		return "", false
	}
	return canonicalID(rec[RecordIDField])
}

func canonicalID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case json.Number:
		return id.String(), true
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10), true
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}

// IndexOf returns the position of the record with identifier id inside
// collection key, or -1.
func (d Document) IndexOf(key, id string) int {
	items, ok := d[key].([]any)
	if !ok {
		return -1
	}
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if recID, ok := RecordID(rec); ok && recID == id {
			return i
		}
	}
	return -1
}

// Number converts a decoded JSON value into a float64. Numeric strings such
// as "7" or "85.0" are accepted because older documents stored form input
// verbatim. ok is false for anything else.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int is [Number] truncated to int, 0 when v is not numeric.
func Int(v any) int {
	f, ok := Number(v)
	if !ok {
		return 0
	}
	return int(f)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Document:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// ToRecord converts a typed record model into its generic JSON form.
func ToRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec Record
	if err = dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		return nil, ErrNotAnObject
	}
	return rec, nil
}

// FromRecords decodes generic records into typed models.
func FromRecords[T any](records []Record) ([]T, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	out := make([]T, 0, len(records))
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}
