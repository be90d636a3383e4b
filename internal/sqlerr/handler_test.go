package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/visited-countries/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, UniqueViolation},
		{"not null", &pgconn.PgError{Code: "23502"}, NotNullViolation},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ForeignKeyViolation},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), UniqueViolation},
		{"classified", &Error{Code: CheckViolation}, CheckViolation},
		{"no rows", pgx.ErrNoRows, NoRows},
		{"syntax error", &pgconn.PgError{Code: "42601"}, Other},
		{"plain", errors.New("boom"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrCode(tt.err))
		})
	}
}

func TestClassifyKeepsUnrelatedErrors(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, context.Canceled, Classify(context.Canceled))

	pgErr := &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "visited_countries"}
	classified := Classify(pgErr)

	var sqlErr *Error
	require.True(t, errors.As(classified, &sqlErr))
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, SeverityError, sqlErr.Severity)
	assert.Equal(t, "visited_countries", sqlErr.TableName)
	assert.True(t, errors.Is(classified, pgErr))
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "visited_countries",
		ConstraintName: "visited_countries_user_id_country_code_key",
	})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusPreconditionFailed, httpErr.Status)
	assert.Equal(t, "VISITED_COUNTRY_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "color"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusPreconditionFailed, httpErr.Status)
	assert.Equal(t, "USER_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Color is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "color", httpErr.Errors[0].Field)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23503", TableName: "visited_countries", ColumnName: "user_id"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "The referenced User does not exist", httpErr.Message)
}

func TestHandleErrorFallbacks(t *testing.T) {
	var httpErr *errs.HTTPError

	require.True(t, errors.As(HandleError(pgx.ErrNoRows), &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.True(t, errors.As(HandleError(errors.New("connection reset")), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	original := errs.NewNotFoundError("User not found", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_users_name"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("users_name_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("visited_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "USER", singular("USERS"))
	assert.Equal(t, "WORLD_COUNTRY", singular("WORLD_COUNTRIES"))
	assert.Equal(t, "visited_country", singular("visited_countries"))
	assert.Equal(t, "RECORD", singular("RECORD"))
}
