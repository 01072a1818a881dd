/*
cohorts.go - Cohort builder

PURPOSE:
  Derives the mutually exclusive worker cohorts for the day from the roster
  and the absence sets. Conceptually a small state machine per worker:

    scheduled roster (optionally corner-filtered, new-hire-filtered)
      -> excluded?  Vacation > Banked Holiday > VTO > Swap-Out
         (first match removes the worker from Expected and fixes the audit
          reason; later reasons never re-exclude or re-count)
      -> Expected, and Present-Excluding-Swaps iff on premises

  Swap-in and VET evaluation is independent of the exclusion chain and draws
  from the UNFILTERED roster: a worker can swap into, or accept extra time
  for, a shift outside their home corner or department.
*/
package reconcile

// AbsenceSets are the per-day id sets produced by the extractors.
type AbsenceSets struct {
	Vacation      IDSet
	BankedHoliday IDSet
	VTO           IDSet
	VET           IDSet
	SwapOut       IDSet
	SwapIn        IDSet
}

// Cohorts holds every derived worker sequence for one run.
type Cohorts struct {
	// Scheduled is the roster after the optional pre-filters; Full is the
	// roster before them. Both are deduped by id (last roster row wins).
	Scheduled []WorkerProfile
	Full      []WorkerProfile

	Expected              []WorkerProfile
	PresentExcludingSwaps []WorkerProfile
	SwapOut               []WorkerProfile
	SwapInExpected        []WorkerProfile
	SwapInPresent         []WorkerProfile
	VTO                   []WorkerProfile
	VETExpected           []WorkerProfile
	VETPresent            []WorkerProfile

	// ExclusionReason records, for each excluded scheduled worker, the
	// first (highest-priority) reason that removed them from Expected.
	ExclusionReason map[string]Reason
}

// ApplyPresence returns a copy of the roster with OnPremises populated from
// the time-clock map. This is the only writer of that field.
func ApplyPresence(roster []WorkerProfile, onPrem map[string]bool) []WorkerProfile {
	out := make([]WorkerProfile, len(roster))
	for i, p := range roster {
		p.OnPremises = onPrem[p.ID]
		out[i] = p
	}
	return out
}

// BuildCohorts derives all cohorts. scheduledCorners is the day's corner
// codes from the shift schedule; it only filters when FilterByCorner is set
// and the list is non-empty.
func BuildCohorts(ctx RunContext, roster []WorkerProfile, absences AbsenceSets, scheduledCorners []string) Cohorts {
	full := dedupeLastByID(roster)
	scheduled := prefilter(ctx, full, scheduledCorners)

	scheduledIDs := IDSet{}
	for _, p := range scheduled {
		scheduledIDs.Add(p.ID)
	}

	// Exclusion chain, highest priority first. Only scheduled workers can
	// be excluded; exclusion is idempotent via set union, the priority
	// matters for the recorded reason.
	reasons := make(map[string]Reason)
	exclude := func(ids IDSet, reason Reason) {
		for id := range ids {
			if !scheduledIDs.Has(id) {
				continue
			}
			if _, done := reasons[id]; done {
				continue
			}
			reasons[id] = reason
		}
	}
	exclude(absences.Vacation, ReasonVacation)
	exclude(absences.BankedHoliday, ReasonBankedHoliday)
	exclude(absences.VTO, ReasonVTO)
	exclude(absences.SwapOut, ReasonSwapOut)

	c := Cohorts{
		Scheduled:       scheduled,
		Full:            full,
		ExclusionReason: reasons,
	}

	for _, p := range scheduled {
		if _, excluded := reasons[p.ID]; excluded {
			continue
		}
		c.Expected = append(c.Expected, p)
		if p.OnPremises {
			c.PresentExcludingSwaps = append(c.PresentExcludingSwaps, p)
		}
	}

	// Swap-out is reported against the home (scheduled) roster.
	for _, p := range scheduled {
		if absences.SwapOut.Has(p.ID) {
			c.SwapOut = append(c.SwapOut, p)
		}
	}
	// VTO is reported against the scheduled roster too: it removes workers
	// from today's expected shift.
	for _, p := range scheduled {
		if absences.VTO.Has(p.ID) {
			c.VTO = append(c.VTO, p)
		}
	}

	// Swap-in and VET look up the full roster: the destination shift may be
	// a different corner or department than the worker's home assignment.
	for _, p := range full {
		if absences.SwapIn.Has(p.ID) {
			c.SwapInExpected = append(c.SwapInExpected, p)
			if p.OnPremises {
				c.SwapInPresent = append(c.SwapInPresent, p)
			}
		}
		if absences.VET.Has(p.ID) {
			c.VETExpected = append(c.VETExpected, p)
			if p.OnPremises {
				c.VETPresent = append(c.VETPresent, p)
			}
		}
	}
	return c
}

// prefilter applies the externally toggled pre-filters: scheduled corner
// codes and the new-hire window.
func prefilter(ctx RunContext, roster []WorkerProfile, scheduledCorners []string) []WorkerProfile {
	out := roster

	if ctx.FilterByCorner && len(scheduledCorners) > 0 {
		codes := IDSet{}
		for _, c := range scheduledCorners {
			codes.Add(CornerPrefix(c, ctx.Settings.CornerPrefixLen))
		}
		filtered := make([]WorkerProfile, 0, len(out))
		for _, p := range out {
			if codes.Has(CornerPrefix(p.CornerCode, ctx.Settings.CornerPrefixLen)) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	if ctx.ExcludeNewHires {
		out = filterNewHires(out, ctx.Day, ctx.Settings.NewHireDays)
	}
	return out
}

// filterNewHires drops workers hired fewer than minDays before the selected
// day. Absent or unparseable hire dates never exclude a worker.
func filterNewHires(roster []WorkerProfile, day string, minDays int) []WorkerProfile {
	if minDays <= 0 {
		minDays = 3
	}
	out := make([]WorkerProfile, 0, len(roster))
	for _, p := range roster {
		if p.HireDate == "" {
			out = append(out, p)
			continue
		}
		if daysBetween(p.HireDate, day) >= minDays {
			out = append(out, p)
		}
	}
	return out
}

// dedupeLastByID keeps only the last roster row per id, preserving the
// position of the first occurrence so output ordering stays stable.
func dedupeLastByID(roster []WorkerProfile) []WorkerProfile {
	last := make(map[string]WorkerProfile, len(roster))
	order := make([]string, 0, len(roster))
	for _, p := range roster {
		if _, seen := last[p.ID]; !seen {
			order = append(order, p.ID)
		}
		last[p.ID] = p
	}
	out := make([]WorkerProfile, 0, len(order))
	for _, id := range order {
		out = append(out, last[id])
	}
	return out
}
