// Package repository holds the query and transaction helpers shared by the
// Postgres-backed kit index.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Querier is satisfied by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor is satisfied by *sql.DB, *sql.Tx, and *sql.Conn.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is the Scan method shared by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads one entity from a Scanner.
type ScanFunc[T any] func(Scanner) (T, error)

// Compensation undoes a side effect performed outside the database, such as
// an object written to storage before its index row.
type Compensation func(ctx context.Context) error

// WithTx runs fn inside a transaction and commits when it succeeds.
//
// When fn or the commit fails the transaction is rolled back and every
// compensation runs in reverse order. Compensation failures are joined onto
// the returned error so errors.Is still matches the original cause.
func WithTx[T any](
	ctx context.Context,
	db *sql.DB,
	fn func(tx *sql.Tx) (T, error),
	undo ...Compensation,
) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, compensate(ctx, err, undo)
	}

	result, err := fn(tx)
	if err == nil {
		err = tx.Commit()
	}

	if err != nil {
		tx.Rollback()
		return zero, compensate(ctx, err, undo)
	}

	return result, nil
}

func compensate(ctx context.Context, cause error, undo []Compensation) error {
	errs := []error{cause}
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](context.WithoutCancel(ctx)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// QueryOne scans the single row returned by query.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(q.QueryRowContext(ctx, query, args...))
}

// QueryMany scans every row returned by query. An empty result is a non-nil
// empty slice so it encodes as [] rather than null.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	return results, rows.Err()
}

// ExecExpectOne runs a statement that must touch exactly one row and returns
// sql.ErrNoRows when it touched none.
func ExecExpectOne(ctx context.Context, e Executor, query string, args ...any) error {
	n, err := ExecCount(ctx, e, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExecCount runs a statement and reports how many rows it affected.
func ExecCount(ctx context.Context, e Executor, query string, args ...any) (int64, error) {
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
