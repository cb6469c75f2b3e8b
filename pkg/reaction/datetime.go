package reaction

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ordinalDay matches day numbers written as 1st, 2nd, 23rd, 4th
var ordinalDay = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\b`)

// extraLayouts are month-name spellings tried when dateparse gives up
var extraLayouts = []string{
	"Jan 2 2006",
	"Jan 2 2006 15:04",
	"January 2 2006",
	"January 2 2006 15:04",
	"2 Jan 2006 15:04",
	"2 January 2006 15:04",
	"2006-01-02 15:04:05 MST",
}

// ParseDateTime parses a timestamp as written by a person. Values without a zone are
// taken as UTC; ambiguous slash dates read month first.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	s = ordinalDay.ReplaceAllString(s, "$1")

	t, err := dateparse.ParseIn(s, time.UTC)
	if err == nil {
		return t, nil
	}
	for _, layout := range extraLayouts {
		if t, lerr := time.ParseInLocation(layout, s, time.UTC); lerr == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, err)
}

// Time parses the stored value
func (d *DateTime) Time() (time.Time, error) {
	if d == nil {
		return time.Time{}, fmt.Errorf("timestamp is not set")
	}
	return ParseDateTime(d.Value)
}
