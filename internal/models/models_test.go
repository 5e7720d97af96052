package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeFreq(t *testing.T) {
	cf, err := ParseChangeFreq("daily")
	require.NoError(t, err)
	assert.Equal(t, ChangeFreqDaily, cf)

	_, err = ParseChangeFreq("fortnightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortnightly")
}

func TestAssignmentWith(t *testing.T) {
	base := Assignment{{Name: "_locale", Value: "de"}, {Name: "id", Value: "1"}}

	t.Run("replace keeps position", func(t *testing.T) {
		got := base.With("_locale", "fr")
		assert.Equal(t, Assignment{{Name: "_locale", Value: "fr"}, {Name: "id", Value: "1"}}, got)
		assert.Equal(t, "de", base[0].Value, "receiver must not change")
	})

	t.Run("new name appended", func(t *testing.T) {
		got := base.With("page", "2")
		require.Len(t, got, 3)
		assert.Equal(t, Param{Name: "page", Value: "2"}, got[2])
		assert.Len(t, base, 2)
	})

	t.Run("get", func(t *testing.T) {
		v, ok := base.Get("id")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
		_, ok = base.Get("missing")
		assert.False(t, ok)
	})
}

func TestNewEntryCopiesAltLang(t *testing.T) {
	route := NewRouteDefinition("page")
	route.AltLang = []string{"fr", "en"}

	entry := NewEntry(route, Assignment{{Name: LocaleParam, Value: "de"}})
	entry.AltLang[0] = "it"

	assert.Equal(t, []string{"fr", "en"}, route.AltLang)
	assert.Equal(t, ChangeFreqNever, entry.ChangeFreq)
	assert.InDelta(t, 0.1, entry.Priority, 1e-9)
}

func TestNewEntryWithoutAltLang(t *testing.T) {
	entry := NewEntry(NewRouteDefinition("home"), nil)
	assert.NotNil(t, entry.AltLang)
	assert.Empty(t, entry.AltLang)
}

func TestRouteConfigUsesFetch(t *testing.T) {
	plain := NewRouteDefinition("home")
	listing := NewRouteDefinition("listing")
	listing.Params = []RouteParam{{Name: "page", Spec: ValuesParam("1", "2")}}

	cfg := RouteConfig{Routes: []RouteDefinition{plain, listing}}
	assert.False(t, cfg.UsesFetch())

	article := NewRouteDefinition("article")
	article.Params = []RouteParam{{Name: "slug", Spec: FetchParam("articles", "slug")}}
	cfg.Routes = append(cfg.Routes, article)
	assert.True(t, cfg.UsesFetch())
}
