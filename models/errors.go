package models

import "errors"

var (
	// ErrNotAnObject is returned when JSON text decodes to something other
	// than an object (array, scalar or null).
	ErrNotAnObject = errors.New("json value is not an object")
)
