package sitemap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// Document is a rendered sitemap together with the entries it was built from.
type Document struct {
	Entries []models.Entry
	Sitemap *models.Sitemap
	XML     []byte
}

// Build turns entries into a sitemap. Entries with alternate languages get
// one hreflang link per language, their own included.
func Build(router *Router, entries []models.Entry) (*models.Sitemap, error) {
	sm := &models.Sitemap{
		XMLNS: models.SitemapNamespace,
		URLs:  make([]models.URL, 0, len(entries)),
	}

	for _, e := range entries {
		loc, err := router.Generate(e.Route, e.Params)
		if err != nil {
			return nil, err
		}

		u := models.URL{
			Loc:        loc,
			ChangeFreq: string(e.ChangeFreq),
			Priority:   FormatPriority(e.Priority),
		}

		if len(e.AltLang) > 0 {
			sm.XHTML = models.XHTMLNamespace

			self, _ := e.Params.Get(models.LocaleParam)
			u.Alternates = append(u.Alternates, alternateLink(self, loc))

			for _, lang := range e.AltLang {
				href, err := router.Generate(e.Route, e.Params.With(models.LocaleParam, lang))
				if err != nil {
					return nil, err
				}
				u.Alternates = append(u.Alternates, alternateLink(lang, href))
			}
		}

		sm.URLs = append(sm.URLs, u)
	}

	return sm, nil
}

// Render serializes a sitemap with the XML declaration.
func Render(sm *models.Sitemap) ([]byte, error) {
	body, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// NewDocument builds and renders entries in one step.
func NewDocument(router *Router, entries []models.Entry) (*Document, error) {
	sm, err := Build(router, entries)
	if err != nil {
		return nil, err
	}

	data, err := Render(sm)
	if err != nil {
		return nil, err
	}

	return &Document{Entries: entries, Sitemap: sm, XML: data}, nil
}

// FormatPriority prints a priority with at least one decimal, e.g. 0.8 or 1.0.
func FormatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// HrefLang returns the BCP 47 form of a locale code, so de_CH becomes de-CH.
// Codes that do not parse are returned unchanged.
func HrefLang(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}

func alternateLink(locale, href string) models.Link {
	return models.Link{Rel: "alternate", HrefLang: HrefLang(locale), Href: href}
}
