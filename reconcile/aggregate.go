/*
aggregate.go - Cohort folding

PURPOSE:
  Folds a cohort (any sequence of WorkerProfiles) into per-bucket
  AMZN/TEMP/TOTAL counts. Workers with no bucket are skipped; workers with
  UNKNOWN employment type increment nothing, so the AMZN + TEMP == TOTAL
  invariant holds for every bucket in every row.
*/
package reconcile

// Fold tallies a cohort into a BucketTable.
func Fold(cohort []WorkerProfile, b *Bucketer) BucketTable {
	table := NewBucketTable()
	for _, p := range cohort {
		bump(table, b.BucketOf(p), p.EmploymentType)
	}
	return table
}

// NewBucketTable returns a table with every bucket present at zero, so
// renderers never have to nil-check cells.
func NewBucketTable() BucketTable {
	t := make(BucketTable, len(Buckets))
	for _, b := range Buckets {
		t[b] = Counts{}
	}
	return t
}

// bump increments one cell. UNKNOWN employment types are excluded from TOTAL
// as well as from the typed counters; counting them in TOTAL would break the
// AMZN + TEMP == TOTAL property the reports rely on.
func bump(t BucketTable, bucket Bucket, typ EmploymentType) {
	if bucket == "" {
		return
	}
	c := t[bucket]
	switch typ {
	case EmploymentAMZN:
		c.AMZN++
	case EmploymentTEMP:
		c.TEMP++
	default:
		return
	}
	c.TOTAL++
	t[bucket] = c
}
