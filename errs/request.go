package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request body and parameter errors.
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

// Bearer token errors, all answered with 401.
var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpiredToken = errors.New("expired access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Malformed reports an empty or truncated payload, e.g. "request body".
func Malformed(payloadName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", payloadName, ErrMalformedPayload),
	}
}

func NewInvalidJSONError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidJSON,
		Details:    "Invalid JSON format",
		Field:      "json",
		Cause:      cause,
	}
}

func NewMissingRequiredFieldError(field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    "Missing required field: " + field,
		Field:      field,
	}
}

func NewInvalidFieldError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", field, reason),
		Field:      field,
	}
}

// NewValidationError turns the result of an ozzo-validation Validate call
// into a 400. Only the alphabetically first failing field is reported.
func NewValidationError(err error) *ApiErr {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrInvalidField, Details: err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	apiErr := NewInvalidFieldError(fields[0], fieldErrs[fields[0]].Error())
	apiErr.Cause = err
	return apiErr
}

func NewUnsupportedMediaTypeError(contentType string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnsupportedMediaType,
		err:        ErrUnsupportedMediaType,
		Details:    fmt.Sprintf("Unsupported media type: %s. Allowed types: %v", contentType, allowed),
		Field:      "content_type",
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

func unauthorized(sentinel error, details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: sentinel, Details: details, Field: "authorization"}
}

func NewMissingTokenError() *ApiErr {
	return unauthorized(ErrMissingToken, "Missing access token")
}

func NewExpiredTokenError() *ApiErr {
	return unauthorized(ErrExpiredToken, "Access token has expired")
}

func NewInvalidTokenError() *ApiErr {
	return unauthorized(ErrInvalidToken, "Invalid access token")
}
