package models

// DeleteResponse reports which record a delete removed and the document
// that remains.
type DeleteResponse struct {
	// ID is the identifier that was removed.
	ID       string   `json:"id"`
	Document Document `json:"document"`
}

// RecordResponse returns the record produced by an add or update together
// with the document it now lives in, so a caller can refresh its whole view
// in one round trip.
type RecordResponse struct {
	Record   Record   `json:"record"`
	Document Document `json:"document"`
}

// InfoResponse describes the running binary.
type InfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
