package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordNotFound(t *testing.T) {
	id := uuid.MustParse("6f1c1f7e-4a5b-4b59-9c1e-0c7e2f7f3a10")
	err := NewRecordNotFound(map[string]string{"id": id.String()})

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, `No resource was found for {"id":"6f1c1f7e-4a5b-4b59-9c1e-0c7e2f7f3a10"}: not found`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
		wantIs     error
	}{
		{name: "postgres duplicate", cause: errors.New(`ERROR: duplicate key value violates unique constraint "idx"`), wantStatus: http.StatusConflict, wantIs: ErrUniqueConstraintViolation},
		{name: "sqlite unique", cause: errors.New("UNIQUE constraint failed: tags.name"), wantStatus: http.StatusConflict, wantIs: ErrUniqueConstraintViolation},
		{name: "foreign key", cause: errors.New("violates foreign key constraint"), wantStatus: http.StatusBadRequest, wantIs: ErrForeignKeyConstraint},
		{name: "connection", cause: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantIs: ErrDatabaseConnection},
		{name: "generic", cause: errors.New("syntax error"), wantStatus: http.StatusInternalServerError, wantIs: ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "post", tt.cause)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.Contains(t, err.GetFullError(), tt.cause.Error())
		})
	}
}

func TestNewValidationError(t *testing.T) {
	verr := validation.Errors{
		"title":  errors.New("cannot be blank"),
		"author": errors.New("author is required"),
	}

	err := NewValidationError(verr)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "author", err.Field)
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Details, "author is required")
}

func TestNewValidationError_PlainError(t *testing.T) {
	err := NewValidationError(errors.New("boom"))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Empty(t, err.Field)
	assert.Equal(t, "invalid field: boom", err.Error())
}

func TestGetFullError_Nested(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", fmt.Errorf("root cause"))
	outer := NewDatabaseError("update", "post", inner)
	assert.Equal(t, "database query failed: Failed to update post -> inner -> root cause", outer.GetFullError())
}

func TestMalformed(t *testing.T) {
	err := Malformed("request body")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "request body: malformed payload", err.Error())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestConflictAndForeignKeyPredicates(t *testing.T) {
	conflict := NewConflictError("author still has posts")
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)
	assert.ErrorIs(t, conflict, ErrConflict)
	assert.False(t, IsForeignKeyConstraintError(conflict))

	fk := NewDatabaseError("delete", "author", errors.New("FOREIGN KEY constraint failed"))
	assert.True(t, IsForeignKeyConstraintError(fk))
	assert.True(t, IsForeignKeyConstraintError(NewMissingReferenceError("author", ErrAuthorNotFound)))
}
