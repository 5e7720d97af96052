package models

import (
	"errors"
	"fmt"
)

// Failure classes of a sitemap run. Callers match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrResolution    = errors.New("resolution error")
)

// LocaleParam is the route parameter that carries an entry's language.
const LocaleParam = "_locale"

const (
	DefaultChangeFreq = ChangeFreqNever
	DefaultPriority   = 0.1
)

// ChangeFreq is the sitemap <changefreq> value of a route.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// ParseChangeFreq returns the ChangeFreq named by s.
func ParseChangeFreq(s string) (ChangeFreq, error) {
	switch cf := ChangeFreq(s); cf {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return cf, nil
	}
	return "", fmt.Errorf("unknown change frequency %q", s)
}
