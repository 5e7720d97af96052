package expand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/storage"
)

func newTestStore() *storage.MemoryStore {
	s := storage.NewMemoryStore(nil, storage.Options{})
	s.Insert("articles", []string{"id", "slug"},
		storage.Record{"id": 1, "slug": "first"},
		storage.Record{"id": 2, "slug": "second"},
	)
	s.Insert("drafts", []string{"id", "slug"})
	return s
}

func TestValueSourceResolve(t *testing.T) {
	ctx := context.Background()
	src := NewValueSource(newTestStore())

	t.Run("values verbatim", func(t *testing.T) {
		spec := models.ValuesParam("c", "a", "b")
		got, err := src.Resolve(ctx, "id", spec)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, got)

		got[0] = "z"
		assert.Equal(t, "c", spec.Values[0], "result must not alias the spec")
	})

	t.Run("scalar", func(t *testing.T) {
		got, err := src.Resolve(ctx, "_locale", models.ScalarParam("de"))
		require.NoError(t, err)
		assert.Equal(t, []string{"de"}, got)
	})

	t.Run("fetch", func(t *testing.T) {
		got, err := src.Resolve(ctx, "slug", models.FetchParam("articles", "slug"))
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := src.Resolve(ctx, "slug", models.FetchParam("articles", "title"))
		require.ErrorIs(t, err, models.ErrResolution)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown repository", func(t *testing.T) {
		_, err := src.Resolve(ctx, "slug", models.FetchParam("pages", "slug"))
		require.ErrorIs(t, err, models.ErrResolution)
	})

	t.Run("no store", func(t *testing.T) {
		_, err := NewValueSource(nil).Resolve(ctx, "slug", models.FetchParam("articles", "slug"))
		require.ErrorIs(t, err, models.ErrResolution)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := src.Resolve(ctx, "id", models.ParamSpec{Kind: models.ParamKind(42)})
		require.ErrorIs(t, err, models.ErrConfiguration)
	})
}
