package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common SQLSTATE codes we care about
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrCannotConnectNow     = "57P03" // i.e. startup in progress
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError.
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsForeignKeyViolation reports whether the error is a foreign key constraint violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, pgErrForeignKeyViolation) }

// IsNotNullViolation reports whether the error is a not-null constraint violation
func IsNotNullViolation(err error) bool { return IsSQLState(err, pgErrNotNullViolation) }

// IsCheckViolation reports whether the error is a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, pgErrCheckViolation) }

// IsInvalidText reports whether the error is an invalid text representation (bad cast)
func IsInvalidText(err error) bool { return IsSQLState(err, pgErrInvalidTextRepresentation) }

// FromPg maps a Postgres error to a project *Error, passing through non-pg errors
func FromPg(err error) error {
	if err == nil {
		return nil
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return Wrap(err, ErrorCodeDuplicateKey, constraintMsg(pgErr, "duplicate key"))
	case pgErrForeignKeyViolation:
		return Wrap(err, ErrorCodeInvalidArgument, constraintMsg(pgErr, "foreign key violation"))
	case pgErrNotNullViolation, pgErrCheckViolation, pgErrInvalidTextRepresentation:
		return Wrap(err, ErrorCodeInvalidArgument, constraintMsg(pgErr, "invalid value"))
	default:
		return Wrap(err, ErrorCodeDB, "database error")
	}
}

func constraintMsg(pgErr *pgconn.PgError, fallback string) string {
	if pgErr.ConstraintName != "" {
		return fallback + " (" + pgErr.ConstraintName + ")"
	}
	return fallback
}

// IsRetryable reports whether a retry of the failed statement may succeed
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable, pgErrCannotConnectNow:
			return true
		}
		return false
	}
	// connection level failures come through as plain errors
	msg := Root(err).Error()
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe")
}
