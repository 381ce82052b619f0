package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE classes we care about
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrNotNullViolation    = "23502"
	pgErrCheckViolation      = "23514"
	pgErrSerializationFail   = "40001"
	pgErrDeadlockDetected    = "40P01"
	pgErrConnectionFailure   = "08006"
	pgErrCannotConnectNow    = "57P03"
)

// PgError extracts a *pgconn.PgError if present
func PgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	if stderrs.As(err, &pg) {
		return pg, true
	}
	return nil, false
}

// IsDuplicateKey reports whether err is a unique violation (either our code or raw SQLSTATE)
func IsDuplicateKey(err error) bool {
	if IsCode(err, ErrorCodeDuplicateKey) {
		return true
	}
	if pg, ok := PgError(err); ok {
		return pg.Code == pgErrUniqueViolation
	}
	return false
}

// IsRetryable reports whether err is transient and the statement may be retried
func IsRetryable(err error) bool {
	if pg, ok := PgError(err); ok {
		switch pg.Code {
		case pgErrSerializationFail, pgErrDeadlockDetected, pgErrConnectionFailure, pgErrCannotConnectNow:
			return true
		}
	}
	return IsCode(err, ErrorCodeUnavailable)
}

// DBErrorCode classifies a database error into our ErrorCode space
func DBErrorCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}
	if pg, ok := PgError(err); ok {
		switch pg.Code {
		case pgErrUniqueViolation:
			return ErrorCodeDuplicateKey
		case pgErrForeignKeyViolation, pgErrCheckViolation:
			return ErrorCodeConflict
		case pgErrNotNullViolation:
			return ErrorCodeInvalidArgument
		case pgErrSerializationFail, pgErrDeadlockDetected, pgErrConnectionFailure, pgErrCannotConnectNow:
			return ErrorCodeUnavailable
		}
	}
	return ErrorCodeDB
}

// FromPostgres wraps a raw pg error into a structured *Error with a classified code
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, DBErrorCode(err), msg)
}
