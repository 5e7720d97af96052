package expand

import (
	"fmt"
	"slices"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// ExpandAltLang returns base followed by one sibling per alternate locale.
// A sibling has its _locale set to the alternate, and its alternate list is
// the declared list with its own locale replaced by the base locale, so
// every entry links to all the others and never to itself.
func ExpandAltLang(base models.Entry, alternates []string) ([]models.Entry, error) {
	locale, ok := base.Params.Get(models.LocaleParam)
	if !ok {
		return nil, fmt.Errorf("route %q: route parameter %q must be defined when alt_lang is defined: %w",
			base.Route, models.LocaleParam, models.ErrValidation)
	}

	for i, lang := range alternates {
		if lang == locale {
			return nil, fmt.Errorf("route %q: alt_lang %q is also the entry's own locale: %w",
				base.Route, lang, models.ErrValidation)
		}
		if slices.Contains(alternates[:i], lang) {
			return nil, fmt.Errorf("route %q: alt_lang %q listed twice: %w",
				base.Route, lang, models.ErrValidation)
		}
	}

	entries := make([]models.Entry, 0, len(alternates)+1)

	first := base
	first.AltLang = slices.Clone(alternates)
	entries = append(entries, first)

	for i, lang := range alternates {
		siblingAlt := slices.Clone(alternates)
		siblingAlt[i] = locale

		sibling := base
		sibling.Params = base.Params.With(models.LocaleParam, lang)
		sibling.AltLang = siblingAlt
		entries = append(entries, sibling)
	}

	return entries, nil
}
