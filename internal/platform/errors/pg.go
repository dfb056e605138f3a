package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the state store cares about
var (
	pgBadInput  = []string{"22P02", "22032"}
	pgTransient = []string{"40001", "40P01", "55P03"}
	pgNotReady  = []string{"25006", "57P03"}
)

// commit failures pgx reports as plain text rather than a PgError
var transientText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
}

func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// IsNoRows reports whether err carries pgx.ErrNoRows
func IsNoRows(err error) bool { return stderrs.Is(err, pgx.ErrNoRows) }

// FromPostgres codes a database error under msg. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if state, ok := sqlState(err); ok {
		switch {
		case oneOf(state, pgBadInput):
			code = ErrorCodeInvalidArgument
		case oneOf(state, pgNotReady):
			code = ErrorCodeUnavailable
		}
	}
	return Wrap(err, code, msg)
}

// IsRetryable reports whether a save that failed with err is worth another attempt.
// Cancellation never is
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if state, ok := sqlState(err); ok {
		return oneOf(state, pgTransient)
	}
	s := strings.ToLower(Root(err).Error())
	for _, t := range transientText {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
