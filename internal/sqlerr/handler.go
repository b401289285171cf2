package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/account-service/internal/errs"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
//   - If err can be unwrapped into *sqlerr.Error, return its Code.
//   - Otherwise return sqlerr.Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Normalize replaces a *pgconn.PgError anywhere in err's chain by its
// *sqlerr.Error conversion. Other errors are returned unchanged.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	return err
}

// HandleError converts a low-level or domain error into an application-level
// HTTP error.
//
//   - *errs.HTTPError: returned unchanged
//   - *errs.NotFoundError: 404 naming the entity, e.g. ACCOUNT_NOT_FOUND
//   - *errs.StorageError, *sqlerr.Error, *pgconn.PgError: generic 500
//   - anything else: generic 500
//
// Only the 404 message is derived from the error; nothing about a storage
// failure reaches the client.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		if notFound.Entity == "" {
			return errs.NewNotFoundError("Resource not found", false, nil)
		}
		code := generateErrorCode(notFound.Entity, "NOT_FOUND")
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(notFound.Entity)), true, &code)
	}

	return errs.NewInternalServerError()
}

// generateErrorCode builds a machine-readable <DOMAIN>_<ACTION> code.
//
//	"account", "NOT_FOUND" -> ACCOUNT_NOT_FOUND
func generateErrorCode(entity, action string) string {
	return fmt.Sprintf("%s_%s", strings.ToUpper(entity), action)
}

// humanizeText converts snake_case into Title Case.
//
//	"account_management" -> "Account Management"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
