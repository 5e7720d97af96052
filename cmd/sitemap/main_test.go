package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/sitemap-gen/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeRoutes(t *testing.T, output, routes string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paths.yml")
	content := "output: " + output + "\n" + routes
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	output := t.TempDir()
	paths := writeRoutes(t, output, `routes:
  home:
    path: /
    change_freq: daily
    priority: 0.8
  page:
    path: /{_locale}/{page}
    route_params:
      _locale: en
      page: {values: [about, contact]}
    alt_lang: [de]
`)

	out, err := execute(t, "generate", "example.com",
		"--driver", "memory",
		"--configuration", paths,
		"--scheme", "https",
		"--log-level", "none",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Sitemap with 5 urls written to")

	data, err := os.ReadFile(filepath.Join(output, "sitemap.xml"))
	require.NoError(t, err)

	xml := string(data)
	assert.Contains(t, xml, "<loc>https://example.com/</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/en/about</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/de/contact</loc>")
	assert.Contains(t, xml, `hreflang="de" href="https://example.com/de/about"`)
}

func TestGenerateUnknownRepository(t *testing.T) {
	output := t.TempDir()
	paths := writeRoutes(t, output, `routes:
  home:
  article:
    route_params:
      slug: {fetch: {repository: articles, property: nonexistent}}
`)

	_, err := execute(t, "generate", "example.com",
		"--driver", "memory",
		"--configuration", paths,
		"--log-level", "none",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrResolution)
	assert.Contains(t, err.Error(), `route "article"`)

	_, statErr := os.Stat(filepath.Join(output, "sitemap.xml"))
	assert.True(t, os.IsNotExist(statErr), "no sitemap is written when a route fails")
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		_, err := execute(t, "generate")
		require.Error(t, err)
	})

	t.Run("missing configuration", func(t *testing.T) {
		_, err := execute(t, "generate", "example.com",
			"--driver", "memory",
			"--configuration", filepath.Join(t.TempDir(), "paths.yml"),
			"--log-level", "none",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("alt_lang without locale", func(t *testing.T) {
		paths := writeRoutes(t, t.TempDir(), "routes:\n  page:\n    alt_lang: [de]\n")
		_, err := execute(t, "generate", "example.com",
			"--driver", "memory",
			"--configuration", paths,
			"--log-level", "none",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("unknown mandate", func(t *testing.T) {
		paths := writeRoutes(t, t.TempDir(), "routes:\n  home:\n")
		_, err := execute(t, "generate", "example.com",
			"--driver", "memory",
			"--configuration", paths,
			"--mandateId", "3",
			"--log-level", "none",
		)
		require.Error(t, err)
	})
}

func TestInspect(t *testing.T) {
	output := t.TempDir()
	paths := writeRoutes(t, output, `routes:
  page:
    route_params:
      _locale: en
    alt_lang: [de, fr]
`)

	_, err := execute(t, "generate", "example.com",
		"--driver", "memory",
		"--configuration", paths,
		"--log-level", "none",
	)
	require.NoError(t, err)

	out, err := execute(t, "inspect", filepath.Join(output, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Total URLs found: 3")
	assert.Contains(t, out, "Alternate links: 9")
	assert.Contains(t, out, "Languages: de, en, fr")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sitemap dev\n", out)
}
