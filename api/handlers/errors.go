// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"blockpress-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsInvalidReference(err), errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsDepthExceeded(err):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	var srcErr *errors.SourceUnavailableError
	if stderrors.As(err, &srcErr) {
		var humaErr error
		switch {
		case srcErr.StatusCode == http.StatusTooManyRequests:
			humaErr = huma.Error429TooManyRequests("Rate limited by document source")
		case srcErr.StatusCode >= 500:
			humaErr = huma.Error503ServiceUnavailable("Document source error", err)
		default:
			humaErr = huma.Error502BadGateway("Document source unavailable", err)
		}
		if srcErr.RetryAfter > 0 {
			secs := int(srcErr.RetryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			humaErr = huma.ErrorWithHeaders(humaErr, http.Header{"Retry-After": {strconv.Itoa(secs)}})
		}
		return humaErr
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
