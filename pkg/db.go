package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

// IsNotNullViolationError checks if the error is a not null violation error
func IsNotNullViolationError(err error) bool {
	return hasPgErrorCode(err, pgNotNullViolation)
}

// IsCheckViolationError checks if the error is a check constraint violation error
func IsCheckViolationError(err error) bool {
	return hasPgErrorCode(err, pgCheckViolation)
}

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
