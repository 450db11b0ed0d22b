package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Match is a single played match. It is the input model of the match
// mutators; stored matches keep every field they were saved with, including
// ones this type does not declare.
type Match struct {
	// ID is assigned on creation and never changed afterwards.
	ID string `json:"id,omitempty"`

	// Player1 is conventionally the owner of the data set.
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`

	// Score1 and Score2 are the games won by each player. Older documents
	// store them as strings, newer ones as numbers; both decode.
	Score1 Score `json:"score1,omitempty"`
	Score2 Score `json:"score2,omitempty"`

	// Material1 is the cue used by player 1; it is registered in the
	// document's materials list.
	Material1 string `json:"material1,omitempty"`
	Material2 string `json:"material2,omitempty"`

	// Modality is free text such as "Bola 9".
	Modality string `json:"modality,omitempty"`

	// Date is the day the match was played (YYYY-MM-DD).
	Date string `json:"date,omitempty"`

	// Timestamp is the creation instant (RFC 3339).
	Timestamp string `json:"timestamp,omitempty"`
}

// Score is a match score kept in its textual form.
type Score string

// UnmarshalJSON accepts both "7" and 7.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Score(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Score(n.String())
	return nil
}

// Int returns the numeric value of the score, 0 when it is not a number.
func (s Score) Int() int {
	return Int(string(s))
}

// ModalityCategory maps free-text modality to one of the modalityStats
// categories. The empty string means the modality is not tracked.
func ModalityCategory(modality string) string {
	m := strings.ToLower(strings.Join(strings.Fields(modality), ""))
	switch {
	case strings.Contains(m, "10"):
		return "bola10"
	case strings.Contains(m, "8"):
		return "bola8"
	case strings.Contains(m, "9"):
		return "bola9"
	default:
		return ""
	}
}

// ModalityStats is one category of the modalityStats counter object.
type ModalityStats struct {
	MatchesPlayed int `json:"matchesPlayed"`
	MatchesWon    int `json:"matchesWon"`
	GamesPlayed   int `json:"gamesPlayed"`
	GamesWon      int `json:"gamesWon"`
}

// ModalityAutoStats derives per-category counters from the recorded
// matches. A match counts as won when score1 is greater than score2.
func ModalityAutoStats(doc Document) map[string]ModalityStats {
	stats := map[string]ModalityStats{
		"bola8":  {},
		"bola9":  {},
		"bola10": {},
	}

	for _, rec := range doc.Records("matches") {
		modality, _ := rec["modality"].(string)
		key := ModalityCategory(modality)
		if key == "" {
			continue
		}

		s1 := Int(rec["score1"])
		s2 := Int(rec["score2"])

		st := stats[key]
		st.MatchesPlayed++
		if s1 > s2 {
			st.MatchesWon++
		}
		st.GamesPlayed += s1 + s2
		st.GamesWon += s1
		stats[key] = st
	}

	return stats
}
