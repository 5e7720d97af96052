package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/sitemap-gen/internal/models"
)

func testRoutes() []models.RouteDefinition {
	home := models.NewRouteDefinition("home")
	home.Path = "/"

	article := models.NewRouteDefinition("article")
	article.Path = "/{_locale}/article/{slug}"

	return []models.RouteDefinition{home, article, models.NewRouteDefinition("contact")}
}

func TestRouterGenerate(t *testing.T) {
	r, err := NewRouter("http", "example.com", testRoutes())
	require.NoError(t, err)

	tests := []struct {
		name   string
		route  string
		params models.Assignment
		want   string
	}{
		{"root", "home", nil, "http://example.com/"},
		{"default path", "contact", nil, "http://example.com/contact"},
		{
			"placeholders",
			"article",
			models.Assignment{{Name: "_locale", Value: "de"}, {Name: "slug", Value: "hello world"}},
			"http://example.com/de/article/hello%20world",
		},
		{
			"extra params in declaration order",
			"article",
			models.Assignment{{Name: "page", Value: "2"}, {Name: "_locale", Value: "de"}, {Name: "slug", Value: "a"}, {Name: "b", Value: "x&y"}},
			"http://example.com/de/article/a?page=2&b=x%26y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Generate(tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouterErrors(t *testing.T) {
	r, err := NewRouter("https", "example.com", testRoutes())
	require.NoError(t, err)

	_, err = r.Generate("unknown", nil)
	require.Error(t, err)

	_, err = r.Generate("article", models.Assignment{{Name: "_locale", Value: "de"}})
	require.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "slug")

	_, err = NewRouter("ftp", "example.com", nil)
	require.Error(t, err)

	_, err = NewRouter("http", "", nil)
	require.Error(t, err)

	_, err = NewRouter("http", "http://example.com/", nil)
	require.Error(t, err)
}

func TestRouterHost(t *testing.T) {
	r, err := NewRouter("http", "bücher.example", nil)
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example", r.Host())

	r, err = NewRouter("http", "localhost:8080", nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", r.Host())
}
