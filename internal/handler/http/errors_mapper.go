package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidSubmission:  http.StatusBadRequest,
	service.ErrSubmissionConflict: http.StatusConflict,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrUnavailable:        http.StatusServiceUnavailable,

	models.ErrInvalidDateRange: http.StatusBadRequest,
	models.ErrInvalidCursor:    http.StatusBadRequest,

	ErrInvalidJSON:          http.StatusBadRequest,
	ErrInvalidLimit:         http.StatusBadRequest,
	ErrIntegrityCheckFailed: http.StatusBadRequest,
	ErrScopeMismatch:        http.StatusForbidden,
	ErrNoScopes:             http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
