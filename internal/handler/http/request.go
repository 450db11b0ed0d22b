package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/cue-sync/models"
)

// maxBodyBytes bounds request bodies; whole documents are the largest.
const maxBodyBytes = 16 << 20

func kindParam(r *http.Request) models.DocumentKind {
	return models.DocumentKind(chi.URLParam(r, "kind"))
}

// decodeBody decodes a JSON request body into dst keeping numbers as
// json.Number, so record ids survive unchanged.
func decodeBody(r *http.Request, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err = dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
