package http

import (
	"errors"
	"net/http"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// statusForError maps application errors onto HTTP status codes. Anything
// unrecognized is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidStatusTransition):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrProductNotFound):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps internal failure details out of responses.
func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
