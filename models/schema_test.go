package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) Document {
	t.Helper()
	doc, err := DecodeDocument([]byte(s))
	require.NoError(t, err)
	return doc
}

// ── Normalize ──

func TestNormalize_NilYieldsEmptyMatchesDocument(t *testing.T) {
	doc := MatchesSchema.Normalize(nil)

	for _, key := range []string{"matches", "tournaments", "circuits", "players", "materials"} {
		assert.Equal(t, []any{}, doc[key], key)
	}

	stats, ok := doc["modalityStats"].(map[string]any)
	require.True(t, ok)
	for _, cat := range []string{"bola8", "bola9", "bola10"} {
		assert.Equal(t, map[string]any{
			"matchesPlayed": 0, "matchesWon": 0, "gamesPlayed": 0, "gamesWon": 0,
		}, stats[cat], cat)
	}
}

func TestNormalize_TrainingsScalarDefault(t *testing.T) {
	doc := TrainingsSchema.Normalize(Document{})
	assert.Equal(t, "1.0", doc["version"])
	assert.Equal(t, []any{}, doc["trainings"])

	kept := TrainingsSchema.Normalize(Document{"version": "2.0"})
	assert.Equal(t, "2.0", kept["version"])
}

func TestNormalize_PreservesWellTypedAndUnknownFields(t *testing.T) {
	in := decode(t, `{
		"matches": [{"id": 1, "player1": "Xisco"}],
		"players": ["Xisco"],
		"theme": "dark",
		"tournaments": "broken"
	}`)

	doc := MatchesSchema.Normalize(in)

	assert.Equal(t, in["matches"], doc["matches"])
	assert.Equal(t, []any{"Xisco"}, doc["players"])
	assert.Equal(t, "dark", doc["theme"])
	assert.Equal(t, []any{}, doc["tournaments"])

	// the input map is untouched
	assert.Equal(t, "broken", in["tournaments"])
	_, hasCircuits := in["circuits"]
	assert.False(t, hasCircuits)
}

func TestNormalize_AddsMissingCounterCategory(t *testing.T) {
	in := decode(t, `{"modalityStats": {"bola9": {"matchesPlayed": 4}, "lastUpdated": "2025-01-01T00:00:00Z"}}`)

	doc := MatchesSchema.Normalize(in)

	stats := doc["modalityStats"].(map[string]any)
	assert.Equal(t, in["modalityStats"].(map[string]any)["bola9"], stats["bola9"])
	assert.Equal(t, "2025-01-01T00:00:00Z", stats["lastUpdated"])
	assert.Equal(t, MatchesSchema.Counters[0].Zero(), stats["bola8"])
	assert.Equal(t, MatchesSchema.Counters[0].Zero(), stats["bola10"])
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"matches": null, "players": 5}`,
		`{"matches": [{"id": "a"}], "modalityStats": []}`,
		`{"modalityStats": {"bola8": 3}, "extra": {"nested": [1, 2]}}`,
		`{"trainings": [{"id": 1}], "version": "1.0"}`,
	}

	for _, schema := range Schemas() {
		for _, in := range inputs {
			t.Run(string(schema.Kind)+in, func(t *testing.T) {
				once := schema.Normalize(decode(t, in))
				twice := schema.Normalize(once)
				assert.Equal(t, once, twice)
			})
		}
	}
}

// ── Schema registry ──

func TestSchemaFor(t *testing.T) {
	s, ok := SchemaFor(KindTrainings)
	require.True(t, ok)
	assert.Equal(t, "xisco_trainings_data", s.StorageKey)
	assert.Equal(t, "trainings.json", s.RemotePath)

	_, ok = SchemaFor("unknown")
	assert.False(t, ok)
}

func TestPrimaryCollections(t *testing.T) {
	assert.Equal(t, []string{"matches", "tournaments"}, MatchesSchema.PrimaryCollections())
	assert.Equal(t, []string{"trainings"}, TrainingsSchema.PrimaryCollections())
}
