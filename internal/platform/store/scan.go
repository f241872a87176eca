package store

import (
	"context"
	"errors"

	perr "devstreams/internal/platform/errors"
)

// ErrManyRows is returned by One when the statement matched more than one row
var ErrManyRows = errors.New("store: more than one row")

// One maps exactly one row with scan. No row is perr.ErrNotFound
func One[T any](ctx context.Context, db DB, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rs, err := db.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	defer rs.Close()

	if !rs.Next() {
		if err := rs.Err(); err != nil {
			return zero, err
		}
		return zero, perr.ErrNotFound
	}
	v, err := scan(rs)
	if err != nil {
		return zero, err
	}
	if rs.Next() {
		return zero, ErrManyRows
	}
	return v, rs.Err()
}

// Many maps every row with scan. No rows is an empty, nil slice
func Many[T any](ctx context.Context, db DB, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rs, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []T
	for rs.Next() {
		v, err := scan(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rs.Err()
}
