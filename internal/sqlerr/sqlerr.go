// Package sqlerr classifies database driver errors.
//
// Repositories run every driver error through Classify so the layers above
// switch on a small Code enum (unique violation, not-null violation, no rows,
// ...) instead of Postgres SQLSTATE strings. HandleError is the last-resort
// mapping from those codes to client-facing HTTP errors.
package sqlerr

import (
	"fmt"
)

// Code is the driver-independent category of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	InvalidInput        Code = "invalid_input"
	NoRows              Code = "no_rows"
)

// Severity mirrors the Postgres message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// SQLSTATE values the service distinguishes.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgNotNullViolation     = "23502"
	pgForeignKeyViolation  = "23503"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgInvalidTextRepr      = "22P02"
	pgStringDataTruncation = "22001"
)

// Error is a classified database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("%s on table %s: %s", e.Code, e.TableName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgNotNullViolation:
		return NotNullViolation
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgUniqueViolation:
		return UniqueViolation
	case pgCheckViolation:
		return CheckViolation
	case pgInvalidTextRepr, pgStringDataTruncation:
		return InvalidInput
	default:
		return Other
	}
}

// MapSeverity maps the driver's severity string to a Severity.
// Unknown values are treated as errors.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
