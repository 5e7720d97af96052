package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNullValue = errors.New("null value")
)

// Store is the data source behind fetch parameters. A repository is a
// table (or collection) and a property one of its columns.
type Store interface {
	Initialize(ctx context.Context) error
	Close() error

	// FetchValues returns the property of every record of the repository,
	// in the repository's natural order.
	FetchValues(ctx context.Context, repository, property string) ([]string, error)
}

// Options tune how a store reads its repositories.
type Options struct {
	// TenantID restricts fetches to one tenant (mandate). Zero disables it.
	TenantID int64
	// TenantColumn is the column that carries the tenant of a record.
	// Repositories without it are not filtered.
	TenantColumn string
	// TenantTable holds one row per tenant, keyed by id.
	TenantTable string
	// OrderColumn defines the natural order of a repository when present.
	OrderColumn string
}

const (
	DefaultTenantColumn = "mandate_id"
	DefaultTenantTable  = "websites"
	DefaultOrderColumn  = "id"
)

func (o Options) withDefaults() Options {
	if o.TenantColumn == "" {
		o.TenantColumn = DefaultTenantColumn
	}
	if o.TenantTable == "" {
		o.TenantTable = DefaultTenantTable
	}
	if o.OrderColumn == "" {
		o.OrderColumn = DefaultOrderColumn
	}
	return o
}

// Open returns the store for a driver name as used in the configuration.
func Open(driver, url string, opts Options) (Store, error) {
	switch driver {
	case "sqlite3", "sqlite":
		return NewSQLiteStore(url, opts)
	case "postgres", "postgresql":
		return NewPostgresStore(url, opts)
	case "memory":
		return NewMemoryStore(nil, opts), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
