// Package apierr converts pipeline errors into the API's uniform error
// envelope.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/igordesouzasouza/catalog-ingest/pkg/validator"
	"github.com/igordesouzasouza/catalog-ingest/pkg/zerror"
)

// ErrorResponse is the error envelope: a single human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var InternalServerErr = ErrorResponse{
	Error:      "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func New(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Error:      zErr.Msg(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		parts := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			parts[i] = fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), validator.ValidationErrorMessage(fe))
		}

		return ErrorResponse{
			Error:      strings.Join(parts, "; "),
			StatusCode: http.StatusBadRequest,
		}
	}

	return InternalServerErr
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusBadRequest, zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
