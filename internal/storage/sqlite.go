package storage

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	sqlStore
}

func NewSQLiteStore(dbPath string, opts Options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{sqlStore{
		db:            db,
		stbl:          sq.StatementBuilder.RunWith(db),
		opts:          opts.withDefaults(),
		quote:         quoteSQLiteIdent,
		fallbackOrder: "rowid",
	}}
	s.columns = s.tableColumns

	return s, nil
}

func (s *SQLiteStore) tableColumns(ctx context.Context, table string) ([]string, error) {
	return queryColumns(ctx, s.db, `SELECT name FROM pragma_table_info(?)`, table)
}

func quoteSQLiteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
