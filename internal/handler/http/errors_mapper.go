package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrRecordNotFound:    http.StatusNotFound,
	service.ErrUnknownDocument:   http.StatusNotFound,
	service.ErrInvalidRecord:     http.StatusBadRequest,
	service.ErrResetNotConfirmed: http.StatusBadRequest,

	adapter.ErrTimeout:       http.StatusGatewayTimeout,
	adapter.ErrConflict:      http.StatusConflict,
	adapter.ErrUnauthorized:  http.StatusBadGateway,
	adapter.ErrTransport:     http.StatusBadGateway,
	adapter.ErrNoCredentials: http.StatusPreconditionFailed,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
