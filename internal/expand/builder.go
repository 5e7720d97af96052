package expand

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/storage"
)

// Builder expands route definitions into sitemap entries.
type Builder struct {
	params *ParamExpander
	logger *zap.Logger
}

type Option func(*builderOptions)

type builderOptions struct {
	allowEmpty bool
	logger     *zap.Logger
}

// WithAllowEmpty lets routes whose parameters resolve to no values produce
// no entries instead of failing the build.
func WithAllowEmpty(allow bool) Option {
	return func(o *builderOptions) { o.allowEmpty = allow }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *builderOptions) { o.logger = logger }
}

// NewBuilder creates a builder reading fetch parameters from store.
func NewBuilder(store storage.Store, opts ...Option) *Builder {
	o := builderOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Builder{
		params: NewParamExpander(NewValueSource(store), o.allowEmpty),
		logger: o.logger,
	}
}

// Build returns the entries of all routes: routes in declaration order, then
// assignments in expansion order, then each assignment's language siblings.
// The first failing route aborts the build.
func (b *Builder) Build(ctx context.Context, routes []models.RouteDefinition) ([]models.Entry, error) {
	var entries []models.Entry

	for _, route := range routes {
		routeEntries, err := b.BuildRoute(ctx, route)
		if err != nil {
			return nil, err
		}
		entries = append(entries, routeEntries...)
	}

	return entries, nil
}

// BuildRoute returns the entries of a single route.
func (b *Builder) BuildRoute(ctx context.Context, route models.RouteDefinition) ([]models.Entry, error) {
	b.logger.Info("generating urls for route", zap.String("route", route.Name))

	assignments, err := b.params.Expand(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", route.Name, err)
	}
	if len(assignments) == 0 {
		b.logger.Warn("route produced no urls", zap.String("route", route.Name))
		return nil, nil
	}

	entries := make([]models.Entry, 0, len(assignments)*(len(route.AltLang)+1))
	for _, a := range assignments {
		entry := models.NewEntry(route, a)
		if !route.HasAltLang() {
			entries = append(entries, entry)
			continue
		}

		siblings, err := ExpandAltLang(entry, route.AltLang)
		if err != nil {
			return nil, err
		}
		entries = append(entries, siblings...)
	}

	b.logger.Debug("route expanded",
		zap.String("route", route.Name),
		zap.Int("assignments", len(assignments)),
		zap.Int("urls", len(entries)),
	)

	return entries, nil
}
