package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// classify maps a storage failure to a code. Postgres errors go by SQLSTATE
// class, sqlite and driver errors fall back to DB
func classify(err error) ErrorCode {
	if e := (*Error)(nil); stderrs.As(err, &e) {
		return e.code
	}
	switch {
	case stderrs.Is(err, pgx.ErrNoRows), stderrs.Is(err, sql.ErrNoRows):
		return ErrorCodeNotFound
	case stderrs.Is(err, context.DeadlineExceeded), stderrs.Is(err, context.Canceled):
		return ErrorCodeUnavailable
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
			return ErrorCodeUnavailable
		}
		return ErrorCodeDB
	}
	switch {
	// connection exception, insufficient resources, operator intervention
	case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "53"), strings.HasPrefix(pgErr.Code, "57"):
		return ErrorCodeUnavailable
	// data exception
	case strings.HasPrefix(pgErr.Code, "22"):
		return ErrorCodeInvalidArgument
	// integrity constraint violation
	case strings.HasPrefix(pgErr.Code, "23"):
		return ErrorCodeValidation
	}
	return ErrorCodeDB
}

// FromDB classifies a storage error and wraps it with msg. nil stays nil
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, classify(err), msg)
}

// FromDBf is FromDB with formatting
func FromDBf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, classify(err), fmt.Sprintf(format, a...))
}
