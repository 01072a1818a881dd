/*
swaps.go - Shift-swap extraction

PURPOSE:
  Swap-request exports carry a "date to skip" and a "date to work". A row's
  role is decided by which date matches the selected day, not by which file
  it came from: skip-date match -> swap-out, work-date match -> swap-in, and
  a single row can be both. Sites usually upload two physical files (an
  "out" report and an "in" report); both are processed identically and the
  results unioned.

STATUS GATING:
  The status column is optional. Absent column means every row is approved;
  present column means the value must match the configured approved-status
  list or the fallback approved/completed/accepted vocabulary.
*/
package reconcile

import (
	"regexp"
	"strings"
)

var approvedFallback = regexp.MustCompile(`APPROVED|COMPLETED|ACCEPTED`)

// ExtractSwaps processes one swap file into swap-out and swap-in id sets for
// the selected day.
func ExtractSwaps(rows []Record, day string, mapping SwapMapping) (out, in IDSet, err error) {
	out, in = IDSet{}, IDSet{}
	if len(rows) == 0 {
		return out, in, nil
	}

	sample := rows[0]
	idKey := ResolveColumn(sample, mapping.ID)
	statusKey := ResolveColumn(sample, mapping.Status)
	skipKey := ResolveColumn(sample, mapping.SkipDate)
	workKey := ResolveColumn(sample, mapping.WorkDate)
	if idKey == "" {
		return nil, nil, &MissingColumnError{Source: "swaps", Concept: "worker id"}
	}
	if skipKey == "" && workKey == "" {
		return nil, nil, &MissingColumnError{Source: "swaps", Concept: "date to skip or date to work"}
	}

	for _, r := range rows {
		id := NormalizeID(r[idKey])
		if id == "" {
			continue
		}
		if statusKey != "" && !statusApproved(r[statusKey], mapping.ApprovedStatuses) {
			continue
		}
		if skipKey != "" && ToCalendarDay(r[skipKey]) == day {
			out.Add(id)
		}
		if workKey != "" && ToCalendarDay(r[workKey]) == day {
			in.Add(id)
		}
	}
	return out, in, nil
}

// CollectSwaps merges the out-file and in-file extractions. Role is decided
// by date match, so rows from either file can land in either set.
func CollectSwaps(outRows, inRows []Record, day string, mapping SwapMapping) (out, in IDSet, err error) {
	out1, in1, err := ExtractSwaps(outRows, day, mapping)
	if err != nil {
		return nil, nil, err
	}
	out2, in2, err := ExtractSwaps(inRows, day, mapping)
	if err != nil {
		return nil, nil, err
	}
	for id := range out2 {
		out1.Add(id)
	}
	for id := range in2 {
		in1.Add(id)
	}
	return out1, in1, nil
}

func statusApproved(status string, approved []string) bool {
	v := strings.ToUpper(strings.TrimSpace(status))
	for _, a := range approved {
		if v == strings.ToUpper(strings.TrimSpace(a)) {
			return true
		}
	}
	return approvedFallback.MatchString(v)
}
