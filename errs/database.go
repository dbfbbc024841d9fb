package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrDatabaseQuery             = errors.New("database query failed")
	ErrDatabaseConnection        = errors.New("database connection failed")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
)

// Raised by the repositories when a write points at a row that does not
// exist.
var (
	ErrAuthorNotFound = errors.New("referenced author not found")
	ErrTagNotFound    = errors.New("referenced tag not found")
)

// NewRecordNotFound reports that no row matched where, as in
// No resource was found for {"id":"..."}
func NewRecordNotFound(where any) *ApiErr {
	encoded, err := json.Marshal(where)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", where))
	}
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("No resource was found for %s: %w", encoded, ErrNotFound),
	}
}

// NewMissingReferenceError is returned when a write connects a related row
// that does not exist.
func NewMissingReferenceError(field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrForeignKeyConstraint,
		Details:    fmt.Sprintf("The referenced %s does not exist", field),
		Field:      field,
		Cause:      cause,
	}
}

// NewDatabaseError classifies a driver error by its message. Postgres and
// sqlite wordings are both recognised.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}

	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "UNIQUE constraint failed"):
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        ErrUniqueConstraintViolation,
			Details:    entity + " already exists",
			Cause:      cause,
		}
	case strings.Contains(msg, "foreign key constraint"), strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        ErrForeignKeyConstraint,
			Details:    "The referenced resource does not exist or cannot be linked",
			Cause:      cause,
		}
	case strings.Contains(msg, "connection"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
