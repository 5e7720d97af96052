package expand

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/storage"
)

// ValueSource resolves the possible values of a route parameter. Fetch
// specs are read from the store; the store is never written to.
type ValueSource struct {
	store storage.Store
}

// NewValueSource creates a value source. store may be nil when no route
// uses fetch parameters.
func NewValueSource(store storage.Store) *ValueSource {
	return &ValueSource{store: store}
}

// Resolve returns the ordered values of the named parameter.
func (s *ValueSource) Resolve(ctx context.Context, name string, spec models.ParamSpec) ([]string, error) {
	switch spec.Kind {
	case models.ParamScalar:
		return []string{spec.Scalar}, nil
	case models.ParamValues:
		return slices.Clone(spec.Values), nil
	case models.ParamFetch:
		return s.fetch(ctx, name, spec.Fetch)
	default:
		return nil, fmt.Errorf("unrecognized value for parameter %q: options are \"fetch\" or \"values\": %w",
			name, models.ErrConfiguration)
	}
}

func (s *ValueSource) fetch(ctx context.Context, name string, fetch models.FetchSpec) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("parameter %q: no data source to fetch %s.%s from: %w",
			name, fetch.Repository, fetch.Property, models.ErrResolution)
	}

	values, err := s.store.FetchValues(ctx, fetch.Repository, fetch.Property)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrNullValue) {
		return nil, fmt.Errorf("parameter %q: %w: %w", name, models.ErrResolution, err)
	}
	if err != nil {
		return nil, fmt.Errorf("parameter %q: failed to fetch %s.%s: %w", name, fetch.Repository, fetch.Property, err)
	}

	return values, nil
}
