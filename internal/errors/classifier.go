package errors

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE raised by Postgres when a value does not fit its numeric type.
const numericValueOutOfRange = "22003"

// Classify maps any failure onto the closed code set. Domain errors pass
// through unchanged; numeric overflow from the store becomes ErrMoneyOverflow;
// everything else is ErrInternal.
func Classify(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if stderrors.As(err, &domainErr) {
		return domainErr
	}

	if IsNumericOverflow(err) {
		return ErrMoneyOverflow
	}

	return ErrInternal
}

// IsNumericOverflow reports whether err carries Postgres' numeric truncation
// signal, from either the pgx or the lib/pq driver.
func IsNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == numericValueOutOfRange
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == numericValueOutOfRange
	}

	return false
}
