package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/romangod6/sitemap-gen/config"
	"github.com/romangod6/sitemap-gen/internal/expand"
	"github.com/romangod6/sitemap-gen/internal/metrics"
	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/routeconfig"
	"github.com/romangod6/sitemap-gen/internal/sitemap"
	"github.com/romangod6/sitemap-gen/internal/storage"
)

// App holds initialized application components.
type App struct {
	Config  *config.Config
	Routes  *models.RouteConfig
	Store   storage.Store
	Router  *sitemap.Router
	Builder *expand.Builder
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	RunID   string
}

type Option func(*App)

// WithStore uses store instead of opening the configured database.
func WithStore(store storage.Store) Option {
	return func(a *App) { a.Store = store }
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *App) { a.Logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.Metrics = m }
}

// New loads the route configuration, connects to the data source and
// prepares the router for host.
func New(ctx context.Context, cfg *config.Config, host string, opts ...Option) (*App, error) {
	a := &App{Config: cfg, RunID: uuid.NewString()}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	a.Logger = a.Logger.With(zap.String("run_id", a.RunID))

	routes, err := routeconfig.Load(cfg.Sitemap.Configuration)
	if err != nil {
		return nil, fmt.Errorf("failed to load route configuration: %w", err)
	}
	a.Routes = routes

	router, err := sitemap.NewRouter(cfg.Sitemap.Scheme, host, routes.Routes)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	a.Router = router

	// The database is only needed for fetch parameters and the mandate check.
	if a.Store == nil && (routes.UsesFetch() || cfg.Database.TenantID != 0) {
		store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL, cfg.StoreOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		a.Store = store
	}

	if a.Store != nil {
		if err := a.Store.Initialize(ctx); err != nil {
			_ = a.Store.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	a.Builder = expand.NewBuilder(a.Store,
		expand.WithAllowEmpty(cfg.Sitemap.AllowEmpty),
		expand.WithLogger(a.Logger),
	)

	return a, nil
}

// Generate expands every route and renders the sitemap.
func (a *App) Generate(ctx context.Context) (*sitemap.Document, error) {
	start := time.Now()

	entries, err := a.Builder.Build(ctx, a.Routes.Routes)
	if err != nil {
		return nil, err
	}

	doc, err := sitemap.NewDocument(a.Router, entries)
	if err != nil {
		return nil, err
	}

	took := time.Since(start)
	if a.Metrics != nil {
		a.Metrics.ObserveBuild(len(a.Routes.Routes), entries, took)
	}

	a.Logger.Info("sitemap generated",
		zap.String("host", a.Router.Host()),
		zap.Int("routes", len(a.Routes.Routes)),
		zap.Int("urls", len(entries)),
		zap.Duration("took", took),
	)

	return doc, nil
}

// OutputDir is the output of the route configuration, or the configured
// default when the route configuration sets none.
func (a *App) OutputDir() string {
	if a.Routes.Output != "" {
		return a.Routes.Output
	}
	return a.Config.Sitemap.Output
}

// Write stores a generated document in the output directory.
func (a *App) Write(doc *sitemap.Document) (string, error) {
	path, err := sitemap.WriteFile(a.OutputDir(), doc.XML)
	if err != nil {
		return "", err
	}
	a.Logger.Info("sitemap written", zap.String("path", path))
	return path, nil
}

func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
