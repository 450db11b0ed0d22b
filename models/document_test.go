package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "object", input: `{"a": 1}`},
		{name: "array", input: `[1, 2]`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "garbage", input: `{not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, json.Number("1"), doc["a"])
		})
	}
}

func TestDecodeDocument_KeepsLargeIntegerIDs(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"matches": [{"id": 1736873451234567}]}`))
	require.NoError(t, err)

	id, ok := RecordID(doc.Records("matches")[0])
	require.True(t, ok)
	assert.Equal(t, "1736873451234567", id)
}

func TestClone_IsIndependent(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"matches": [{"id": "a"}], "players": ["Xisco"]}`))
	require.NoError(t, err)

	cp := doc.Clone()
	cp.Records("matches")[0]["id"] = "changed"
	cp.AddString("players", "Ana")

	assert.Equal(t, "a", doc.Records("matches")[0]["id"])
	assert.Equal(t, []string{"Xisco"}, doc.Strings("players"))
}

func TestRecordID_Canonical(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
		ok   bool
	}{
		{name: "string", rec: Record{"id": "training_1"}, want: "training_1", ok: true},
		{name: "json number", rec: Record{"id": json.Number("42")}, want: "42", ok: true},
		{name: "float", rec: Record{"id": float64(42)}, want: "42", ok: true},
		{name: "int", rec: Record{"id": 42}, want: "42", ok: true},
		{name: "empty", rec: Record{"id": ""}},
		{name: "missing", rec: Record{}},
		{name: "bool", rec: Record{"id": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecordID(tt.rec)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddString(t *testing.T) {
	doc := Document{}

	assert.True(t, doc.AddString("players", "Xisco"))
	assert.False(t, doc.AddString("players", "Xisco"))
	assert.False(t, doc.AddString("players", "  "))
	assert.True(t, doc.AddString("players", "Ana"))

	assert.Equal(t, []string{"Xisco", "Ana"}, doc.Strings("players"))
}

func TestIndexOf(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"matches": [{"id": 7}, "junk", {"id": "8"}]}`))
	require.NoError(t, err)

	assert.Equal(t, 0, doc.IndexOf("matches", "7"))
	assert.Equal(t, 2, doc.IndexOf("matches", "8"))
	assert.Equal(t, -1, doc.IndexOf("matches", "9"))
	assert.Equal(t, -1, doc.IndexOf("nothing", "7"))
}

func TestNumber(t *testing.T) {
	f, ok := Number("85.0")
	assert.True(t, ok)
	assert.InDelta(t, 85.0, f, 1e-9)

	f, ok = Number(json.Number("7"))
	assert.True(t, ok)
	assert.InDelta(t, 7.0, f, 1e-9)

	_, ok = Number("seven")
	assert.False(t, ok)
	assert.Equal(t, 0, Int(nil))
}

func TestToRecord_OmitsEmptyFields(t *testing.T) {
	rec, err := ToRecord(Match{Player2: "Ana", Score1: "7"})
	require.NoError(t, err)

	assert.Equal(t, Record{"player2": "Ana", "score1": "7"}, rec)
}
