/*
absence.go - Vacation and banked-holiday extraction

PURPOSE:
  The hours-summary file lists paid-hours rows per worker per day. A row
  removes the worker from the expected cohort when its pay-code text matches
  a leave pattern AND the hours clear that pattern's threshold:

    Banked Holiday: >= 12h and code matching BANKED/HOLIDAY (checked first)
    Vacation/PTO:   >= 10h and code matching VAC/PTO/VACATION

  A row matching both patterns is banked holiday. Rows under threshold, off
  the selected day, or with unparseable hours contribute to neither set.

  The file itself is optional - no file means empty sets, which is the
  normal case on most days.
*/
package reconcile

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// IDSet is a set of normalized worker ids.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool { _, ok := s[id]; return ok }

func (s IDSet) Add(id string) { s[id] = struct{}{} }

// List returns the ids in sorted order so exports and JSON stay
// deterministic across runs.
func (s IDSet) List() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

var (
	bankedHolidayCode = regexp.MustCompile(`BANKED|HOLIDAY`)
	vacationCode      = regexp.MustCompile(`VAC|PTO|VACATION`)
	nonHourChars      = regexp.MustCompile(`[^\d.]`)
)

// ExtractLeave returns the vacation and banked-holiday id sets for the
// selected day. Supplying a leave file without resolvable id, date, code,
// and hours columns is an error: the caller provided data the run cannot
// honor, which is worse than providing none.
func ExtractLeave(rows []Record, day string, s Settings) (vacation, banked IDSet, err error) {
	vacation, banked = IDSet{}, IDSet{}
	if len(rows) == 0 {
		return vacation, banked, nil
	}

	sample := rows[0]
	cols := s.Columns.Leave
	idKey := ResolveColumn(sample, cols.ID)
	hoursKey := ResolveColumn(sample, cols.Hours)
	codeKey := ResolveColumn(sample, cols.Code)
	dateKey := ResolveColumn(sample, cols.Date)
	switch {
	case idKey == "":
		return nil, nil, &MissingColumnError{Source: "leave", Concept: "worker id"}
	case dateKey == "":
		return nil, nil, &MissingColumnError{Source: "leave", Concept: "transaction date"}
	case codeKey == "":
		return nil, nil, &MissingColumnError{Source: "leave", Concept: "pay code"}
	case hoursKey == "":
		return nil, nil, &MissingColumnError{Source: "leave", Concept: "payable hours"}
	}

	vacMin := decimal.NewFromFloat(s.VacationMinHours)
	bhMin := decimal.NewFromFloat(s.BankedHolidayMinHours)

	for _, r := range rows {
		id := NormalizeID(r[idKey])
		if id == "" {
			continue
		}
		if ToCalendarDay(r[dateKey]) != day {
			continue
		}
		hours := parseHours(r[hoursKey])
		code := strings.ToUpper(r[codeKey])

		// Banked holiday first: a code matching both patterns is banked.
		if bankedHolidayCode.MatchString(code) && hours.GreaterThanOrEqual(bhMin) {
			banked.Add(id)
		} else if vacationCode.MatchString(code) && hours.GreaterThanOrEqual(vacMin) {
			vacation.Add(id)
		}
	}
	return vacation, banked, nil
}

// parseHours reads an hours cell defensively: spreadsheet exports wrap hours
// in stray units or thousands separators. Unparseable cells count as zero,
// which keeps the row below every threshold.
func parseHours(raw string) decimal.Decimal {
	cleaned := nonHourChars.ReplaceAllString(strings.TrimSpace(raw), "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
