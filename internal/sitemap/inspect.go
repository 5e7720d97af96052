package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
)

// parsedSitemap mirrors models.Sitemap for decoding, where the xhtml prefix
// is resolved to its namespace.
type parsedSitemap struct {
	XMLName xml.Name    `xml:"urlset"`
	URLs    []parsedURL `xml:"url"`
}

type parsedURL struct {
	Loc        string       `xml:"loc"`
	ChangeFreq string       `xml:"changefreq"`
	Priority   string       `xml:"priority"`
	Alternates []parsedLink `xml:"http://www.w3.org/1999/xhtml link"`
}

type parsedLink struct {
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Summary describes the content of a sitemap document.
type Summary struct {
	URLs         int            `json:"urls"`
	Alternates   int            `json:"alternates"`
	ByChangeFreq map[string]int `json:"by_change_freq"`
	Languages    []string       `json:"languages"`
}

// Inspect parses a sitemap document and counts its entries.
func Inspect(data []byte) (*Summary, error) {
	var sm parsedSitemap
	if err := xml.Unmarshal(data, &sm); err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}

	s := &Summary{URLs: len(sm.URLs), ByChangeFreq: make(map[string]int)}
	langs := make(map[string]bool)

	for _, u := range sm.URLs {
		s.ByChangeFreq[u.ChangeFreq]++
		s.Alternates += len(u.Alternates)
		for _, l := range u.Alternates {
			langs[l.HrefLang] = true
		}
	}

	for l := range langs {
		s.Languages = append(s.Languages, l)
	}
	sort.Strings(s.Languages)

	return s, nil
}

// ReadSource loads a sitemap from a file path or an http(s) URL.
func ReadSource(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", source, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
