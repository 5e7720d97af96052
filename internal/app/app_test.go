package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/romangod6/sitemap-gen/config"
	"github.com/romangod6/sitemap-gen/internal/metrics"
	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/sitemap"
	"github.com/romangod6/sitemap-gen/internal/storage"
)

func writePaths(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paths.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, paths string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = "memory"
	cfg.Sitemap.Configuration = writePaths(t, paths)
	cfg.Sitemap.Output = filepath.Join(t.TempDir(), "out")
	cfg.Sitemap.Scheme = "http"
	return cfg
}

func articleStore() *storage.MemoryStore {
	store := storage.NewMemoryStore(nil, storage.Options{TenantID: 1})
	store.Insert("websites", []string{"id"}, storage.Record{"id": 1})
	store.Insert("articles", []string{"id", "slug", "mandate_id"},
		storage.Record{"id": 1, "slug": "hello", "mandate_id": 1},
		storage.Record{"id": 2, "slug": "other-site", "mandate_id": 2},
		storage.Record{"id": 3, "slug": "world", "mandate_id": 1},
	)
	return store
}

func TestGenerateValues(t *testing.T) {
	cfg := testConfig(t, `
routes:
  home:
    path: /
    change_freq: daily
    priority: 0.8
  product:
    path: /product/{id}
    route_params:
      id: {values: [1, 2]}
`)

	a, err := New(context.Background(), cfg, "example.com", WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer a.Close()

	doc, err := a.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)

	locs := make([]string, len(doc.Sitemap.URLs))
	for i, u := range doc.Sitemap.URLs {
		locs[i] = u.Loc
	}
	assert.Equal(t, []string{
		"http://example.com/",
		"http://example.com/product/1",
		"http://example.com/product/2",
	}, locs)

	path, err := a.Write(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Sitemap.Output, sitemap.FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.XML, data)
}

func TestGenerateFetchWithAltLang(t *testing.T) {
	cfg := testConfig(t, `
routes:
  article:
    path: /{_locale}/article/{slug}
    route_params:
      _locale: en
      slug: {fetch: {repository: articles, property: slug}}
    alt_lang: [de]
`)
	m := metrics.New()

	a, err := New(context.Background(), cfg, "example.com", WithStore(articleStore()), WithMetrics(m))
	require.NoError(t, err)

	doc, err := a.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Sitemap.URLs, 4)

	assert.Equal(t, "http://example.com/en/article/hello", doc.Sitemap.URLs[0].Loc)
	assert.Equal(t, "http://example.com/de/article/hello", doc.Sitemap.URLs[1].Loc)
	assert.Equal(t, "http://example.com/en/article/world", doc.Sitemap.URLs[2].Loc)
	assert.Equal(t, "http://example.com/de/article/world", doc.Sitemap.URLs[3].Loc)
	assert.Len(t, doc.Sitemap.URLs[0].Alternates, 2)

	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry, "sitemap_urls_generated_total"))
}

func TestGenerateUnknownProperty(t *testing.T) {
	cfg := testConfig(t, `
routes:
  article:
    route_params:
      slug: {fetch: {repository: articles, property: nonexistent}}
`)

	a, err := New(context.Background(), cfg, "example.com", WithStore(articleStore()))
	require.NoError(t, err)

	doc, err := a.Generate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrResolution)
	assert.Nil(t, doc)

	_, statErr := os.Stat(filepath.Join(a.OutputDir(), sitemap.FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewErrors(t *testing.T) {
	t.Run("missing configuration", func(t *testing.T) {
		cfg := testConfig(t, "routes: {}\n")
		cfg.Sitemap.Configuration = filepath.Join(t.TempDir(), "missing.yml")

		_, err := New(context.Background(), cfg, "example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := testConfig(t, "routes:\n  r:\n    alt_lang: [de]\n")

		_, err := New(context.Background(), cfg, "example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		cfg := testConfig(t, "routes:\n  home:\n")
		store := storage.NewMemoryStore(nil, storage.Options{TenantID: 7})
		store.Insert("websites", []string{"id"}, storage.Record{"id": 1})

		_, err := New(context.Background(), cfg, "example.com", WithStore(store))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to fetch website 7")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig(t, "routes:\n  r:\n    route_params:\n      slug: {fetch: {repository: articles, property: slug}}\n")
		cfg.Database.Driver = "oracle"

		_, err := New(context.Background(), cfg, "example.com")
		require.Error(t, err)
	})

	t.Run("bad scheme", func(t *testing.T) {
		cfg := testConfig(t, "routes:\n  home:\n")
		cfg.Sitemap.Scheme = "ftp"

		_, err := New(context.Background(), cfg, "example.com")
		require.Error(t, err)
	})
}

func TestOutputDir(t *testing.T) {
	cfg := testConfig(t, "output: public/xml/\nroutes:\n  home:\n")
	a, err := New(context.Background(), cfg, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "public/xml/", a.OutputDir())

	cfg = testConfig(t, "routes:\n  home:\n")
	a, err = New(context.Background(), cfg, "example.com")
	require.NoError(t, err)
	assert.Equal(t, cfg.Sitemap.Output, a.OutputDir())
}

func TestNewOpensDatabaseOnlyForFetch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sitemap.db")

	cfg := testConfig(t, "routes:\n  home:\n  product:\n    route_params:\n      id: {values: [1, 2]}\n")
	cfg.Database.Driver = "sqlite3"
	cfg.Database.URL = dbPath

	a, err := New(context.Background(), cfg, "example.com")
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Store)

	doc, err := a.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 3)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "no database file is created without fetch parameters")

	cfg = testConfig(t, "routes:\n  r:\n    route_params:\n      slug: {fetch: {repository: articles, property: slug}}\n")
	cfg.Database.Driver = "sqlite3"
	cfg.Database.URL = dbPath

	a, err = New(context.Background(), cfg, "example.com")
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.Store)
}
