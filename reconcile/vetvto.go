/*
vetvto.go - Voluntary time-off / voluntary extra-time extraction

PURPOSE:
  Opportunity-acceptance exports describe offers of extra time (VET) or time
  off (VTO) and whether a worker took them. The same acceptance often appears
  as several raw rows, and the date lives in whichever of four columns the
  source system felt like populating, so extraction is:

    1. Pick the first date-bearing column that parses, in priority order:
       acceptance time -> opportunity created -> posted date -> shift date.
    2. Gate on acceptance: accepted-count > 0 OR a flag reading
       true/accepted/approved/completed.
    3. Classify the opportunity type via the keyword table; unclassifiable
       rows are dropped from both sets.
    4. Dedupe per (worker, day, type, opportunity id).
    5. VTO beats VET: an id accepted as both on the same day is removed from
       the VET set, since removing a worker from the expected cohort takes
       precedence over adding them.
*/
package reconcile

import (
	"strconv"
	"strings"
)

// OpportunityType classification results used by the keyword rule table.
const (
	opportunityVTO = "VTO"
	opportunityVET = "VET"
)

// ExtractOpportunities returns the VTO and VET id sets for the selected day.
// The file is optional; when supplied it must carry resolvable id and
// opportunity-type columns.
func ExtractOpportunities(rows []Record, day string, s Settings) (vto, vet IDSet, err error) {
	vto, vet = IDSet{}, IDSet{}
	if len(rows) == 0 {
		return vto, vet, nil
	}

	sample := rows[0]
	cols := s.Columns.Opportunity
	idKey := ResolveColumn(sample, cols.ID)
	typeKey := ResolveColumn(sample, cols.Type)
	if idKey == "" {
		return nil, nil, &MissingColumnError{Source: "opportunities", Concept: "worker id"}
	}
	if typeKey == "" {
		return nil, nil, &MissingColumnError{Source: "opportunities", Concept: "opportunity type"}
	}

	countKey := ResolveColumn(sample, cols.AcceptedCount)
	flagKey := ResolveColumn(sample, cols.AcceptedFlag)
	oppIDKey := ResolveColumn(sample, cols.OpportunityID)
	dateKeys := []string{
		ResolveColumn(sample, cols.AcceptanceTime),
		ResolveColumn(sample, cols.CreatedAt),
		ResolveColumn(sample, cols.PostedDate),
		ResolveColumn(sample, cols.ShiftDate),
	}

	seen := IDSet{} // (worker, day, type, opportunity-id) dedupe keys
	for _, r := range rows {
		id := NormalizeID(r[idKey])
		if id == "" {
			continue
		}
		if pickDay(r, dateKeys) != day {
			continue
		}
		if !isAccepted(r, countKey, flagKey) {
			continue
		}
		typ := classifyKeyword(r[typeKey], s.OpportunityRules)
		if typ != opportunityVTO && typ != opportunityVET {
			continue
		}

		dedupe := id + "|" + day + "|" + typ
		if oppIDKey != "" {
			dedupe += "|" + strings.TrimSpace(r[oppIDKey])
		}
		if seen.Has(dedupe) {
			continue
		}
		seen.Add(dedupe)

		if typ == opportunityVTO {
			vto.Add(id)
		} else {
			vet.Add(id)
		}
	}

	// VTO wins over VET for the same worker and day.
	for id := range vto {
		delete(vet, id)
	}
	return vto, vet, nil
}

// pickDay tries the resolved date-bearing columns in priority order and
// returns the first value that parses to a calendar day.
func pickDay(r Record, keys []string) string {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if day := ToCalendarDay(r[k]); day != "" {
			return day
		}
	}
	return ""
}

// isAccepted gates a row on its acceptance signal: a positive accepted
// count, or an explicit flag reading true/accepted/approved/completed.
func isAccepted(r Record, countKey, flagKey string) bool {
	if countKey != "" {
		if n, err := strconv.ParseFloat(strings.TrimSpace(r[countKey]), 64); err == nil && n > 0 {
			return true
		}
	}
	if flagKey != "" {
		switch strings.ToUpper(strings.TrimSpace(r[flagKey])) {
		case "TRUE", "ACCEPTED", "APPROVED", "COMPLETED":
			return true
		}
	}
	return false
}
