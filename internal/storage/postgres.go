package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type PostgresStore struct {
	sqlStore
}

func NewPostgresStore(connStr string, opts Options) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &PostgresStore{sqlStore{
		db:    db,
		stbl:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(db),
		opts:  opts.withDefaults(),
		quote: pq.QuoteIdentifier,
	}}
	s.columns = s.tableColumns

	return s, nil
}

func (s *PostgresStore) tableColumns(ctx context.Context, table string) ([]string, error) {
	query := `
        SELECT column_name
        FROM information_schema.columns
        WHERE table_schema = current_schema() AND table_name = $1
        ORDER BY ordinal_position
    `
	return queryColumns(ctx, s.db, query, table)
}
