package store

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes, per the SQLSTATE listing. Constraint violations are
// classified here by code rather than by message sniffing.
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeUniqueViolation     = "23505"
	pgCodeNotNullViolation    = "23502"
	pgCodeCheckViolation      = "23514"
	pgCodeUndefinedColumn     = "42703"
)

// classify converts a raw database error into exactly one DomainError kind.
// This is the single classification boundary: callers above the store only
// ever see the taxonomy, never driver errors.
func classify(err error, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WrapError(
			apperrors.NotFound(fmt.Sprintf("record not found in %s", table)), err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeForeignKeyViolation:
			// A missing referenced row reads as "referenced record not
			// found" to the caller, not as a conflict.
			return apperrors.WrapError(
				apperrors.NotFound(fmt.Sprintf("referenced record not found while writing %s", table)), err)
		case pgCodeUniqueViolation:
			return apperrors.WrapError(
				apperrors.Conflict(fmt.Sprintf("record already exists in %s", table)), err)
		case pgCodeNotNullViolation, pgCodeCheckViolation:
			return apperrors.WrapError(
				apperrors.Validation(fmt.Sprintf("constraint violated while writing %s: %s", table, pgErr.ConstraintName)), err)
		case pgCodeUndefinedColumn:
			return apperrors.WrapError(
				apperrors.Validation(fmt.Sprintf("unknown column referenced for %s", table)), err)
		}
	}

	return apperrors.WrapError(apperrors.ErrInternal, err)
}
