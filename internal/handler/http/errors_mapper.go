package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/service"
	"github.com/MKhiriev/go-account-service/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrInactiveUser:            http.StatusForbidden,
	service.ErrUserNotFound:            http.StatusNotFound,
	service.ErrSelfDeletion:            http.StatusUnprocessableEntity,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrUniqueViolation: http.StatusConflict,
	store.ErrNotFound:        http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError resolves a service/store error chain to an HTTP status and
// the detail string to expose. Unknown errors and internal sentinels collapse
// to a generic 500 so that storage details never leak to API clients.
func statusFromError(err error) (int, string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, validationErr.Error()
	}

	if errors.Is(err, store.ErrUniqueViolation) {
		return http.StatusConflict, "email already registered"
	}

	for target, status := range errorStatusMap {
		if !errors.Is(err, target) {
			continue
		}
		if status == http.StatusInternalServerError {
			return status, http.StatusText(http.StatusInternalServerError)
		}
		return status, target.Error()
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// handleServiceError logs err and writes its mapped JSON error response.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	h.writeError(w, r, detail, status)
}
