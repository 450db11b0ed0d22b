package service

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrResetNotConfirmed = errors.New("reset not confirmed")
	ErrUnknownDocument   = errors.New("unknown document")
	ErrInvalidRecord     = errors.New("invalid record")
)
