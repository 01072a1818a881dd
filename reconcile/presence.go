/*
presence.go - Time-clock presence resolver

PURPOSE:
  The time-clock file is the only authority on who is physically on
  premises. A worker absent from it is absent, full stop; a worker with any
  row matching a present marker is present, no matter how many other rows
  say otherwise (flags OR together across duplicates).

FAILURE MODE:
  Unlike the optional absence sources, presence resolution failing is fatal
  for the run: there is never a sensible fallback, because the roster is
  forbidden from double-functioning as a presence source.
*/
package reconcile

// ResolvePresence maps time-clock rows to per-worker on-premises flags.
// Both the id column and the on-premises column must resolve.
func ResolvePresence(rows []Record, s Settings) (map[string]bool, error) {
	if len(rows) == 0 {
		return nil, &MissingInputError{Source: "timeclock"}
	}

	sample := rows[0]
	idKey := ResolveColumn(sample, s.Columns.Timeclock.ID)
	onpKey := ResolveColumn(sample, s.Columns.Timeclock.OnPremises)
	if idKey == "" {
		return nil, &MissingColumnError{Source: "timeclock", Concept: "worker id"}
	}
	if onpKey == "" {
		return nil, &MissingColumnError{Source: "timeclock", Concept: "on-premises marker"}
	}

	onPrem := make(map[string]bool, len(rows))
	for _, r := range rows {
		id := NormalizeID(r[idKey])
		if id == "" {
			continue
		}
		onPrem[id] = onPrem[id] || matchesMarker(r[onpKey], s.PresentMarkers)
	}
	return onPrem, nil
}
