package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"record not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, ErrAlreadyExists},
		{"raw duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_skills_name"`), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest, ErrForeignKeyConstraint},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, ErrDatabaseTimeout},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error at or near"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("find", "project", tc.cause)
			assert.Equal(t, tc.status, err.StatusCode)
			assert.ErrorIs(t, err, tc.is)
			assert.Equal(t, tc.status, StatusCode(err))
		})
	}
}

func TestNewDatabaseError_PassesApiErrThrough(t *testing.T) {
	original := NewNotFound("skill")
	assert.Same(t, original, NewDatabaseError("find", "skill", original))
	assert.True(t, IsNotFound(original))
}

func TestGetFullError(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", errors.New("root cause"))
	outer := NewInternalErrorWithCause("outer", inner)
	assert.Equal(t, "outer -> inner -> root cause", outer.GetFullError())
}

func TestStatusCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewInvalidFieldError("year", "bad")))
}

func TestTypeCheckers(t *testing.T) {
	assert.True(t, IsInvalidIdentifierError(NewInvalidIdentifierError("project", "abc")))
	assert.True(t, IsInvalidJSONError(NewInvalidJSONError(errors.New("eof"))))
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))
	assert.True(t, IsConfigError(NewEnvironmentVariableError("DATABASE_URL")))
	assert.True(t, IsConflict(NewAlreadyExists("skill")))
	assert.True(t, IsAlreadyExists(NewDatabaseError("create", "tool", gorm.ErrDuplicatedKey)))
}
