package server

import (
	"context"
	"errors"
	"net/http"

	domaintypes "tripplanner/internal/domain/types"
)

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, domaintypes.ErrTripNotFound):
		return http.StatusNotFound
	case domaintypes.IsWarning(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domaintypes.ErrIndexOutOfRange), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domaintypes.ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	key := "error"
	if domaintypes.IsWarning(err) {
		key = "warning"
	}
	writeJSON(w, status, map[string]string{key: err.Error()})
}
