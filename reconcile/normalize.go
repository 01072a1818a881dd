/*
normalize.go - Column, identity, and date normalization

PURPOSE:
  Every downstream stage joins workers across files by id and filters rows
  by calendar day. Mismatched normalization between sources is the dominant
  bug class in this kind of reconciliation, so all three normalizers live
  here and are used uniformly: no stage may match a header, an id, or a
  date any other way.

CONTRACTS:
  ResolveColumn: case-insensitive, whitespace-collapsed header match; ""
                 means "column absent" and callers skip dependent logic.
  NormalizeID:   digits only, leading zeros stripped, "123.0" == "123";
                 purely non-numeric ids pass through trimmed.
  ToCalendarDay: ISO (time discarded), M/D/YYYY, YYYY-M-D, YYYY/M/D; ""
                 means unparseable and never matches a selected day.
*/
package reconcile

import (
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// COLUMN RESOLVER
// =============================================================================

var whitespaceRun = regexp.MustCompile(`\s+`)

// canonHeader lower-cases, trims, and collapses internal whitespace so
// "Employee  ID " matches "employee id".
func canonHeader(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// ResolveColumn finds the field of sample that matches one of the candidate
// header names, trying candidates in order. A second pass tolerates headers
// with trailing question marks ("On Premises?"). Returns "" when nothing
// matches; callers treat that as "optional column absent" unless the column
// is contractually required for the stage.
func ResolveColumn(sample Record, candidates []string) string {
	for _, cand := range candidates {
		want := canonHeader(cand)
		for key := range sample {
			if canonHeader(key) == want {
				return key
			}
		}
	}
	for _, cand := range candidates {
		want := canonHeader(cand)
		for key := range sample {
			if canonHeader(strings.TrimRight(key, "?")) == want {
				return key
			}
		}
	}
	return ""
}

// =============================================================================
// IDENTITY NORMALIZER
// =============================================================================

var (
	nonDigits      = regexp.MustCompile(`\D`)
	leadingZeros   = regexp.MustCompile(`^0+`)
	trailingPoint0 = regexp.MustCompile(`^(\d+)\.0*$`)
)

// NormalizeID canonicalizes a raw worker identifier so "00123", "123" and
// "123.0" (a spreadsheet float artifact) all join as the same worker. When
// the value carries no digits at all the trimmed original is returned so
// alphanumeric badge ids still round-trip.
func NormalizeID(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	// "123.0" is an exported integer, not the id 1230.
	if m := trailingPoint0.FindStringSubmatch(t); m != nil {
		t = m[1]
	}
	digits := nonDigits.ReplaceAllString(t, "")
	digits = leadingZeros.ReplaceAllString(digits, "")
	if digits == "" {
		return strings.TrimSpace(raw)
	}
	return digits
}

// =============================================================================
// DATE NORMALIZER
// =============================================================================

// dayLayouts are tried in order against the raw value and, for timestamp
// inputs, against its date-looking prefix.
var dayLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"1/2/2006",
	"01/02/2006",
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
}

// ToCalendarDay parses a loosely-formatted date or timestamp into the
// canonical YYYY-MM-DD day, discarding any time component. Returns "" on
// unparseable input; callers filtering rows by day must treat "" as
// non-matching, never as a wildcard.
func ToCalendarDay(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return d.Format("2006-01-02")
		}
	}
	for _, layout := range dayLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return ""
}

// daysBetween returns the whole days from one canonical day to another.
// Either side failing to parse yields a very large count, i.e. "long ago".
func daysBetween(from, to string) int {
	f, err1 := time.Parse("2006-01-02", from)
	t, err2 := time.Parse("2006-01-02", to)
	if err1 != nil || err2 != nil {
		return 1 << 30
	}
	return int(t.Sub(f).Hours() / 24)
}

// DayName returns the English weekday name ("Monday") for a canonical day,
// used to look up the shift schedule. Returns "" for invalid days.
func DayName(day string) string {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// matchesMarker reports whether a cell value counts as one of the configured
// markers, comparing upper-cased trimmed forms.
func matchesMarker(val string, markers []string) bool {
	v := strings.ToUpper(strings.TrimSpace(val))
	for _, m := range markers {
		if v == strings.ToUpper(strings.TrimSpace(m)) {
			return true
		}
	}
	return false
}

// classifyKeyword runs an ordered keyword rule table against a free-text
// field. The text is lower-cased and whitespace-collapsed before substring
// matching; the first rule with any matching keyword wins.
func classifyKeyword(text string, rules []KeywordRule) string {
	t := canonHeader(text)
	if t == "" {
		return ""
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(t, strings.ToLower(kw)) {
				return rule.Result
			}
		}
	}
	return ""
}
