package http

import (
	"errors"
	"net/http"

	"github.com/mapa3/distribucion-app/internal/service"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/internal/upload"
)

var errorStatusMap = map[error]int{
	service.ErrDependencyIsNotAvailable: http.StatusServiceUnavailable,
	service.ErrVersionIsNotSpecified:    http.StatusInternalServerError,
	service.ErrValidationNoSource:       http.StatusBadRequest,
	service.ErrValidationNoBundle:       http.StatusBadRequest,
	service.ErrValidationBatchSize:      http.StatusBadRequest,
	service.ErrValidationInvalidBundle:  http.StatusUnprocessableEntity,

	upload.ErrObjectNotFound:   http.StatusNotFound,
	upload.ErrInvalidObjectURL: http.StatusBadRequest,

	store.ErrTableNotFound:       http.StatusUnprocessableEntity,
	store.ErrColumnNotFound:      http.StatusUnprocessableEntity,
	store.ErrDuplicateRow:        http.StatusConflict,
	store.ErrForeignKeyViolation: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
