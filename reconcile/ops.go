/*
ops.go - Planned-vs-present headcount by corner code

PURPOSE:
  The ops view answers "how short are we, per shift code, right now":
  for each corner code scheduled today, planned headcount (from the
  configured table) against workers actually on premises whose corner
  prefix matches, split by ops site group:

    YDD2 = CRETs bucket
    YHM2 = Inbound + DA buckets

  Swap/VET/VTO totals ride along so the delta can be read in context.
*/
package reconcile

// Ops site group names, used as keys into Settings.PlannedHeadcount.
const (
	OpsSiteYDD2 = "YDD2"
	OpsSiteYHM2 = "YHM2"
)

// OpsLine is one corner code's planned-vs-present comparison.
type OpsLine struct {
	Code    string `json:"code"`
	Planned int    `json:"planned"`
	Present int    `json:"present"`
	Delta   int    `json:"delta"`
}

// OpsSite is one site group's table with totals.
type OpsSite struct {
	Site         string    `json:"site"`
	Lines        []OpsLine `json:"lines"`
	TotalPlanned int       `json:"total_planned"`
	TotalPresent int       `json:"total_present"`
	TotalDelta   int       `json:"total_delta"`
}

// OpsReport is the full planned-vs-present view for the selected day.
type OpsReport struct {
	Sites   []OpsSite `json:"sites"`
	SwapOut int       `json:"swap_out"`
	SwapIn  int       `json:"swap_in"`
	VET     int       `json:"vet"`
	VTO     int       `json:"vto"`
}

// BuildOps computes the planned-vs-present tables over the scheduled roster.
func BuildOps(ctx RunContext, c Cohorts, absences AbsenceSets, b *Bucketer, activeCorners []string) OpsReport {
	report := OpsReport{
		SwapOut: len(absences.SwapOut),
		SwapIn:  len(absences.SwapIn),
		VET:     len(absences.VET),
		VTO:     len(absences.VTO),
	}
	for _, site := range []string{OpsSiteYDD2, OpsSiteYHM2} {
		report.Sites = append(report.Sites, buildOpsSite(ctx, c, b, site, activeCorners))
	}
	return report
}

func buildOpsSite(ctx RunContext, c Cohorts, b *Bucketer, site string, activeCorners []string) OpsSite {
	prefixLen := ctx.Settings.CornerPrefixLen
	planned := ctx.Settings.PlannedHeadcount[site]

	present := make(map[string]int, len(activeCorners))
	for _, p := range c.Scheduled {
		if !p.OnPremises || !inOpsSite(b.BucketOf(p), site) {
			continue
		}
		code := CornerPrefix(p.CornerCode, prefixLen)
		if containsCode(activeCorners, code, prefixLen) {
			present[code]++
		}
	}

	out := OpsSite{Site: site}
	for _, raw := range activeCorners {
		code := CornerPrefix(raw, prefixLen)
		line := OpsLine{
			Code:    code,
			Planned: planned[code],
			Present: present[code],
		}
		line.Delta = line.Present - line.Planned
		out.TotalPlanned += line.Planned
		out.TotalPresent += line.Present
		out.Lines = append(out.Lines, line)
	}
	out.TotalDelta = out.TotalPresent - out.TotalPlanned
	return out
}

func inOpsSite(bucket Bucket, site string) bool {
	switch site {
	case OpsSiteYDD2:
		return bucket == BucketCRETs
	case OpsSiteYHM2:
		return bucket == BucketInbound || bucket == BucketDA
	default:
		return false
	}
}

func containsCode(corners []string, code string, prefixLen int) bool {
	for _, c := range corners {
		if CornerPrefix(c, prefixLen) == code {
			return true
		}
	}
	return false
}
