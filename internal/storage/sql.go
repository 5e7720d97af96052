package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
)

// sqlStore implements Store over database/sql. Dialect differences are
// limited to identifier quoting, the column catalogue and a fallback order.
type sqlStore struct {
	db   *sql.DB
	stbl sq.StatementBuilderType
	opts Options

	quote         func(string) string
	columns       func(ctx context.Context, table string) ([]string, error)
	fallbackOrder string
}

func (s *sqlStore) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	if s.opts.TenantID == 0 {
		return nil
	}

	cols, err := s.columns(ctx, s.opts.TenantTable)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("tenant table %q: %w", s.opts.TenantTable, ErrNotFound)
	}

	var one int
	err = s.stbl.
		Select("1").
		From(s.quote(s.opts.TenantTable)).
		Where(sq.Eq{s.quote("id"): s.opts.TenantID}).
		Limit(1).
		QueryRowContext(ctx).
		Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("unable to fetch website %d: %w", s.opts.TenantID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("unable to fetch website %d: %w", s.opts.TenantID, err)
	}

	return nil
}

func (s *sqlStore) FetchValues(ctx context.Context, repository, property string) ([]string, error) {
	cols, err := s.columns(ctx, repository)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("repository %q: %w", repository, ErrNotFound)
	}
	if !slices.Contains(cols, property) {
		return nil, fmt.Errorf("property %q of repository %q: %w", property, repository, ErrNotFound)
	}

	sb := s.stbl.
		Select(s.quote(property)).
		From(s.quote(repository))

	if s.opts.TenantID != 0 && slices.Contains(cols, s.opts.TenantColumn) {
		sb = sb.Where(sq.Eq{s.quote(s.opts.TenantColumn): s.opts.TenantID})
	}

	if slices.Contains(cols, s.opts.OrderColumn) {
		sb = sb.OrderBy(s.quote(s.opts.OrderColumn))
	} else if s.fallbackOrder != "" {
		sb = sb.OrderBy(s.fallbackOrder)
	}

	rows, err := sb.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("error querying %s.%s: %w", repository, property, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, fmt.Errorf("%s.%s record %d: %w", repository, property, len(values)+1, ErrNullValue)
		}
		values = append(values, v.String)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func queryColumns(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error reading columns: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
