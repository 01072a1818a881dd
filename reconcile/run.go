/*
run.go - Pipeline orchestration

PURPOSE:
  One reconciliation run, leaf to root: validate the selected day, build the
  roster, resolve presence, extract the four absence sources, derive the
  cohorts, fold the reconciliation rows, classify the audit, and produce the
  site-split and ops views. The run is a pure function of the RunContext:
  identical inputs and identical selected day always produce an identical
  Result, and a failed run produces no Result at all.

ERROR POLICY:
  Fatal errors (missing required input or column) are raised here, once,
  before any output exists. Row-level garbage never reaches this file; the
  per-stage skip policies have already absorbed it.
*/
package reconcile

import "log/slog"

// Result is the complete output of one reconciliation run.
type Result struct {
	Day          string `json:"day"`
	DayName      string `json:"day_name"`
	Shift        string `json:"shift"`
	CornerCodes  []string `json:"corner_codes"`
	CornerSource string   `json:"corner_source"` // "settings" or "derived"

	Rows        map[CohortName]BucketTable `json:"rows"`
	ShowRatePct int                        `json:"show_rate_pct"`

	VacationIDs      []string `json:"vacation_ids"`
	BankedHolidayIDs []string `json:"banked_holiday_ids"`

	Audit     AuditReport    `json:"audit"`
	NoShows   []AuditDetail  `json:"no_shows"`
	SiteSplit []SiteSplitRow `json:"site_split"`
	Ops       OpsReport      `json:"ops"`
}

// Run executes the full pipeline for one RunContext.
func Run(ctx RunContext) (*Result, error) {
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	day := ToCalendarDay(ctx.Day)
	if day == "" {
		return nil, ErrInvalidDay
	}
	ctx.Day = day

	if len(ctx.Sources.Roster) == 0 {
		return nil, &MissingInputError{Source: "roster"}
	}
	if len(ctx.Sources.Timeclock) == 0 {
		return nil, &MissingInputError{Source: "timeclock"}
	}

	roster, err := BuildRoster(ctx.Sources.Roster, ctx.Settings)
	if err != nil {
		return nil, err
	}
	onPrem, err := ResolvePresence(ctx.Sources.Timeclock, ctx.Settings)
	if err != nil {
		return nil, err
	}
	roster = ApplyPresence(roster, onPrem)

	vacation, banked, err := ExtractLeave(ctx.Sources.Leave, day, ctx.Settings)
	if err != nil {
		return nil, err
	}
	vto, vet, err := ExtractOpportunities(ctx.Sources.Opportunities, day, ctx.Settings)
	if err != nil {
		return nil, err
	}
	swapOut, swapIn, err := CollectSwaps(ctx.Sources.SwapOut, ctx.Sources.SwapIn, day, ctx.Settings.SwapMapping)
	if err != nil {
		return nil, err
	}
	absences := AbsenceSets{
		Vacation:      vacation,
		BankedHoliday: banked,
		VTO:           vto,
		VET:           vet,
		SwapOut:       swapOut,
		SwapIn:        swapIn,
	}

	corners, cornerSource := cornerCodes(ctx, roster)
	cohorts := BuildCohorts(ctx, roster, absences, corners)
	bucketer := NewBucketer(ctx.Settings)

	rows := map[CohortName]BucketTable{
		CohortRegularExpected: Fold(cohorts.Expected, bucketer),
		CohortRegularPresent:  Fold(cohorts.PresentExcludingSwaps, bucketer),
		CohortSwapOut:         Fold(cohorts.SwapOut, bucketer),
		CohortSwapInExpected:  Fold(cohorts.SwapInExpected, bucketer),
		CohortSwapInPresent:   Fold(cohorts.SwapInPresent, bucketer),
		CohortVTO:             Fold(cohorts.VTO, bucketer),
		CohortVETExpected:     Fold(cohorts.VETExpected, bucketer),
		CohortVETPresent:      Fold(cohorts.VETPresent, bucketer),
	}

	audit, noShows := BuildAudit(ctx, cohorts, absences, bucketer)

	result := &Result{
		Day:              day,
		DayName:          DayName(day),
		Shift:            ctx.Shift,
		CornerCodes:      corners,
		CornerSource:     cornerSource,
		Rows:             rows,
		ShowRatePct:      showRate(rows),
		VacationIDs:      vacation.List(),
		BankedHolidayIDs: banked.List(),
		Audit:            audit,
		NoShows:          noShows,
		SiteSplit:        BuildSiteSplit(rows),
		Ops:              BuildOps(ctx, cohorts, absences, bucketer, corners),
	}

	ctx.Logger.Info("reconciliation complete",
		"day", day,
		"shift", ctx.Shift,
		"expected", rows[CohortRegularExpected].SumTotals(),
		"present", rows[CohortRegularPresent].SumTotals(),
		"show_rate_pct", result.ShowRatePct,
	)
	return result, nil
}

// cornerCodes looks up the day's scheduled corner codes from the shift
// schedule, falling back to the distinct corners observed in the roster
// (capped, to keep a malformed roster from exploding the view).
func cornerCodes(ctx RunContext, roster []WorkerProfile) ([]string, string) {
	if byDay, ok := ctx.Settings.ShiftSchedule[ctx.Shift]; ok {
		if codes := byDay[DayName(ctx.Day)]; len(codes) > 0 {
			return codes, "settings"
		}
	}

	const maxDerived = 12
	seen := IDSet{}
	var derived []string
	for _, p := range roster {
		c := CornerPrefix(p.CornerCode, ctx.Settings.CornerPrefixLen)
		if c == "" || seen.Has(c) {
			continue
		}
		seen.Add(c)
		derived = append(derived, c)
		if len(derived) == maxDerived {
			break
		}
	}
	return derived, "derived"
}

// showRate is the headline percentage: everyone who showed (regular present
// plus swap-ins and VET present) over everyone expected, rounded.
func showRate(rows map[CohortName]BucketTable) int {
	expected := rows[CohortRegularExpected].SumTotals()
	if expected == 0 {
		return 0
	}
	showed := rows[CohortRegularPresent].SumTotals() +
		rows[CohortSwapInPresent].SumTotals() +
		rows[CohortVETPresent].SumTotals()
	return int(float64(showed)/float64(expected)*100 + 0.5)
}
