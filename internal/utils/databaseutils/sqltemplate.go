package databaseutils

import (
	"context"
	"database/sql"
	"time"

	"github.com/mdobak/go-xerrors"
)

type SQLTemplate struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewSQLTemplate(db *sql.DB, timeout time.Duration) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
	}
}

// ExecuteQuery runs query on the transaction carried by ctx, or on the pool,
// and maps every row with extractor.
func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	rows, err := GetSQLExecutor(ctx, sqlTemplate.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	return results, nil
}

// ExecuteSingleQuery is ExecuteQuery for exactly one row; no row yields sql.ErrNoRows.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T
	results, err := ExecuteQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, sql.ErrNoRows
	}
	return results[0], nil
}

// Exec runs a statement and returns the number of affected rows.
func Exec(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	result, err := GetSQLExecutor(ctx, sqlTemplate.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, xerrors.New(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, xerrors.New(err)
	}
	return affected, nil
}

func Count(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	return ExecuteSingleQuery(sqlTemplate, ctx, query, func(rows *sql.Rows) (int64, error) {
		var n int64
		if err := rows.Scan(&n); err != nil {
			return 0, xerrors.New(err)
		}
		return n, nil
	}, args...)
}
