package api

import (
	"errors"
	"net/http"

	"github.com/wanderlens/wanderlens/core"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrExternalUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
