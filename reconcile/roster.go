/*
roster.go - Roster builder

PURPOSE:
  Maps raw roster records to typed WorkerProfiles. The roster is the spine
  of the run: every cohort is derived from it, and every other source joins
  against its normalized ids.

REQUIRED COLUMNS:
  - worker id
  - department id
  - corner code or shift pattern (at least one of the two)
  Everything else is optional with a documented default: employment type
  defaults to UNKNOWN, management area to "", hire date to absent.

INVARIANT:
  The roster builder never sets OnPremises. Presence comes only from the
  time-clock resolver (presence.go), so a roster column that happens to look
  like a presence flag can never leak into the counts.
*/
package reconcile

import "strings"

// BuildRoster maps raw roster rows to WorkerProfiles. Rows whose normalized
// id is empty are dropped silently; they cannot be joined to any other
// source. When the same id appears twice the last row wins in lookup maps,
// matching spreadsheet-edit semantics.
func BuildRoster(rows []Record, s Settings) ([]WorkerProfile, error) {
	if len(rows) == 0 {
		return nil, &MissingInputError{Source: "roster"}
	}

	sample := rows[0]
	cols := s.Columns.Roster
	idKey := ResolveColumn(sample, cols.ID)
	deptKey := ResolveColumn(sample, cols.Department)
	cornerKey := ResolveColumn(sample, cols.Corner)
	patternKey := ResolveColumn(sample, cols.ShiftPattern)

	if idKey == "" {
		return nil, &MissingColumnError{Source: "roster", Concept: "worker id"}
	}
	if deptKey == "" {
		return nil, &MissingColumnError{Source: "roster", Concept: "department id"}
	}
	if cornerKey == "" && patternKey == "" {
		return nil, &MissingColumnError{Source: "roster", Concept: "corner code or shift pattern"}
	}

	// Optional columns.
	typeKey := ResolveColumn(sample, cols.EmploymentType)
	areaKey := ResolveColumn(sample, cols.Area)
	hireKey := ResolveColumn(sample, cols.HireDate)

	prefixLen := s.CornerPrefixLen
	if prefixLen <= 0 {
		prefixLen = 2
	}

	profiles := make([]WorkerProfile, 0, len(rows))
	for _, r := range rows {
		id := NormalizeID(r[idKey])
		if id == "" {
			continue
		}

		corner := ""
		if cornerKey != "" {
			corner = strings.TrimSpace(r[cornerKey])
		}
		if corner == "" && patternKey != "" {
			// Derived corners are the fixed-length prefix of the shift
			// pattern, e.g. "DA-0730" -> "DA".
			p := strings.TrimSpace(r[patternKey])
			if len(p) > prefixLen {
				p = p[:prefixLen]
			}
			corner = strings.ToUpper(p)
		}

		hire := ""
		if hireKey != "" {
			hire = ToCalendarDay(r[hireKey]) // "" when absent or unparseable
		}

		profiles = append(profiles, WorkerProfile{
			ID:               id,
			DepartmentID:     strings.TrimSpace(r[deptKey]),
			ManagementAreaID: trimmedOrEmpty(r, areaKey),
			EmploymentType:   classifyEmployment(valueOrEmpty(r, typeKey), s.EmploymentRules),
			CornerCode:       corner,
			HireDate:         hire,
		})
	}
	return profiles, nil
}

// classifyEmployment resolves free-text employment/worker-type/company text
// against the ordered keyword table. Unmatched text yields UNKNOWN, which is
// excluded from every department count.
func classifyEmployment(text string, rules []KeywordRule) EmploymentType {
	switch classifyKeyword(text, rules) {
	case string(EmploymentAMZN):
		return EmploymentAMZN
	case string(EmploymentTEMP):
		return EmploymentTEMP
	default:
		return EmploymentUnknown
	}
}

// CornerPrefix returns the uppercased fixed-length shift-code prefix of a
// corner value, the key used by the shift schedule and the ops view.
func CornerPrefix(corner string, prefixLen int) string {
	if prefixLen <= 0 {
		prefixLen = 2
	}
	c := strings.TrimSpace(corner)
	if len(c) > prefixLen {
		c = c[:prefixLen]
	}
	return strings.ToUpper(c)
}

func valueOrEmpty(r Record, key string) string {
	if key == "" {
		return ""
	}
	return r[key]
}

func trimmedOrEmpty(r Record, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSpace(r[key])
}
