package importer

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/capframe/capframe-backend/internal/domain/importing"
)

// MapError maps storage failures into import error codes. Errors already
// carrying import semantics pass through untouched; everything else that
// leaks out of the transaction is persistence-layer by definition.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var impErr *importing.Error
	if errors.As(err, &impErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return importing.Wrap(importing.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return importing.Wrap(importing.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return importing.Wrap(importing.CodeConflict, op, err) // unique_violation
		case "40001", "40P01", "55P03":
			return importing.Wrap(importing.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "already exists"):
		return importing.Wrap(importing.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return importing.Wrap(importing.CodeRetryable, op, err)
	default:
		return importing.Wrap(importing.CodePersistence, op, err)
	}
}

// isUniqueViolation reports whether err is a unique-index violation,
// optionally scoped to one constraint. The string fallbacks cover wrapped
// errors that lose type information and the SQLite driver, whose messages
// carry no SQLSTATE.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			if strings.TrimSpace(constraint) == "" {
				return true
			}
			return strings.EqualFold(strings.TrimSpace(pgErr.ConstraintName), strings.TrimSpace(constraint))
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "sqlstate 23505") {
		if strings.TrimSpace(constraint) == "" {
			return true
		}
		return strings.Contains(msg, strings.ToLower(strings.TrimSpace(constraint)))
	}
	// SQLite phrasing, e.g. "UNIQUE constraint failed: capability_domain.capability_id".
	return strings.Contains(msg, "unique constraint failed")
}
