package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"turfbook/shared/constant"
	"turfbook/shared/failure"

	"github.com/lib/pq"
)

var errRequiredFilter = errors.New("required filter")

const (
	pqClassConnectionException  = "08"
	pqErrorCodeCannotConnectNow = "57P03"
)

// IsUniqueViolation reports whether err was caused by a unique or primary key constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// IsUnavailable reports whether err means the database could not be reached,
// as opposed to a query the database rejected.
func IsUnavailable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == pqClassConnectionException || pqErr.Code == pqErrorCodeCannotConnectNow
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

// WrapUnavailable tags connectivity errors with failure.StoreUnavailable so the
// boundary can answer 503. Other errors are returned unchanged.
func WrapUnavailable(err error) error {
	if !IsUnavailable(err) || errors.Is(err, failure.StoreUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %w", failure.StoreUnavailable, err)
}
