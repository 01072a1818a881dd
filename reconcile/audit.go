/*
audit.go - Absence audit classifier

PURPOSE:
  Assigns every scheduled-but-unaccounted-for worker exactly one
  human-readable absence reason, by priority:

    Vacation/PTO -> Banked Holiday -> VTO accepted -> Swap-Out
      -> VET (not shown) -> No-Show

  Exclusion reasons are reported even when the worker is physically on
  premises: the source of truth for a vacation exclusion is the vacation
  file, and a conflicting time-clock row is exactly the kind of data
  inconsistency the audit exists to surface. A worker who is simply present
  with no exclusion gets no audit entry at all.
*/
package reconcile

import "sort"

// Reason is a human-readable absence classification.
type Reason string

const (
	ReasonVacation      Reason = "Vacation/PTO"
	ReasonBankedHoliday Reason = "Banked Holiday"
	ReasonVTO           Reason = "VTO accepted"
	ReasonSwapOut       Reason = "Swap-Out"
	ReasonVETNotShown   Reason = "VET (not shown)"
	ReasonNoShow        Reason = "No-Show"
)

// ReasonOrder lists the audit table rows in priority order.
var ReasonOrder = []Reason{
	ReasonVacation,
	ReasonBankedHoliday,
	ReasonVTO,
	ReasonSwapOut,
	ReasonVETNotShown,
	ReasonNoShow,
}

// AuditDetail is one row-level audit record, shaped for flat export.
type AuditDetail struct {
	ID             string         `json:"id"`
	Bucket         string         `json:"department"` // bucket name, or "Other"
	EmploymentType EmploymentType `json:"type"`
	Corner         string         `json:"corner"`
	Day            string         `json:"date"`
	Reason         Reason         `json:"reason"`
}

// AuditReport is the per-reason breakdown plus the row-level detail.
type AuditReport struct {
	Counts  map[Reason]BucketTable   `json:"counts"`
	Details map[Reason][]AuditDetail `json:"details"`
}

// BuildAudit classifies every scheduled worker and tallies the reasons.
// NoShows (every Expected worker not on premises, with their reason) is
// returned separately for the dedicated export.
func BuildAudit(ctx RunContext, c Cohorts, absences AbsenceSets, b *Bucketer) (AuditReport, []AuditDetail) {
	report := AuditReport{
		Counts:  make(map[Reason]BucketTable, len(ReasonOrder)),
		Details: make(map[Reason][]AuditDetail, len(ReasonOrder)),
	}
	for _, r := range ReasonOrder {
		report.Counts[r] = NewBucketTable()
	}

	var noShows []AuditDetail
	for _, p := range c.Scheduled {
		reason, audited := classify(p, c, absences)
		if !audited {
			continue
		}
		detail := AuditDetail{
			ID:             p.ID,
			Bucket:         bucketLabel(b.BucketOf(p)),
			EmploymentType: p.EmploymentType,
			Corner:         p.CornerCode,
			Day:            ctx.Day,
			Reason:         reason,
		}
		report.Details[reason] = append(report.Details[reason], detail)
		bump(report.Counts[reason], b.BucketOf(p), p.EmploymentType)

		if !p.OnPremises && (reason == ReasonNoShow || reason == ReasonVETNotShown) {
			noShows = append(noShows, detail)
		}
	}

	for r := range report.Details {
		sortDetails(report.Details[r])
	}
	sortDetails(noShows)
	return report, noShows
}

// classify resolves one scheduled worker's audit reason. The boolean is
// false for workers who need no audit entry (present, nothing to explain).
func classify(p WorkerProfile, c Cohorts, absences AbsenceSets) (Reason, bool) {
	if reason, excluded := c.ExclusionReason[p.ID]; excluded {
		return reason, true
	}
	if p.OnPremises {
		return "", false
	}
	if absences.VET.Has(p.ID) {
		return ReasonVETNotShown, true
	}
	return ReasonNoShow, true
}

func bucketLabel(b Bucket) string {
	if b == "" {
		return "Other"
	}
	return string(b)
}

func sortDetails(details []AuditDetail) {
	sort.Slice(details, func(i, j int) bool {
		if details[i].Bucket != details[j].Bucket {
			return details[i].Bucket < details[j].Bucket
		}
		if details[i].EmploymentType != details[j].EmploymentType {
			return details[i].EmploymentType < details[j].EmploymentType
		}
		return details[i].ID < details[j].ID
	})
}
