// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the pgx driver into a small set of categories
// so failures can be logged with their database context, and maps domain
// errors coming out of the persistence layer onto HTTP errors.
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a coarse category of a PostgreSQL error, derived from SQLSTATE.
type Code string

const (
	Other                 Code = "other"
	ConnectionException   Code = "connection_exception"
	QueryCanceled         Code = "query_canceled"
	InsufficientResources Code = "insufficient_resources"
	AdminShutdown         Code = "admin_shutdown"
	UndefinedTable        Code = "undefined_table"
	UndefinedColumn       Code = "undefined_column"
	InsufficientPrivilege Code = "insufficient_privilege"
	InvalidAuthorization  Code = "invalid_authorization"
	InvalidTextRepr       Code = "invalid_text_representation"
	SyntaxError           Code = "syntax_error"
)

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityUnknown Severity = "UNKNOWN"
)

// Error is a normalized PostgreSQL error.
//
// It keeps the original driver error for Unwrap so errors.As(err,
// **pgconn.PgError) still works on a converted error.
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
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code. Exact codes are checked first, then
// the two-character class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "57014":
		return QueryCanceled
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42501":
		return InsufficientPrivilege
	case "22P02":
		return InvalidTextRepr
	case "42601":
		return SyntaxError
	}

	if len(sqlState) < 2 {
		return Other
	}

	switch sqlState[:2] {
	case "08":
		return ConnectionException
	case "28":
		return InvalidAuthorization
	case "53":
		return InsufficientResources
	}

	return Other
}

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityUnknown
	}
}
