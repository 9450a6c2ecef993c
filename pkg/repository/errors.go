package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes recognized by MapError.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeNotNull         = "23502"
)

// ErrConstraint reports a row rejected by a CHECK or NOT NULL constraint.
var ErrConstraint = errors.New("constraint violation")

// MapError translates database errors to domain errors.
//
// sql.ErrNoRows becomes notFoundErr. A unique violation becomes duplicateErr
// wrapped with the violated constraint name. CHECK and NOT NULL violations
// wrap ErrConstraint with the offending column or constraint. Anything else
// passes through unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return wrapDetail(duplicateErr, pgErr.ConstraintName)
	case codeCheckViolation:
		return wrapDetail(ErrConstraint, pgErr.ConstraintName)
	case codeNotNull:
		return wrapDetail(ErrConstraint, pgErr.ColumnName)
	}

	return err
}

func wrapDetail(err error, detail string) error {
	if detail == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, detail)
}
