package models

// ResetRequest is the body of a document reset. Reset only proceeds when
// the caller confirmed it and also typed the confirmation phrase.
type ResetRequest struct {
	// Phrase must equal [ResetPhrase].
	Phrase string `json:"phrase"`
}

// ResetPhrase is the word a caller must type to confirm a reset.
const ResetPhrase = "BORRAR"

// MaterialRequest registers a cue without recording a match.
type MaterialRequest struct {
	Material string `json:"material"`
}

// ModalityStatsRequest replaces the manual modality counters of the matches
// document. Categories missing from the request are reset to zero.
type ModalityStatsRequest map[string]ModalityStats
