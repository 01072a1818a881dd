/*
buckets.go - Department bucketer

PURPOSE:
  Classifies a worker into exactly one named department bucket, or none.
  The reference configuration reuses department ids across buckets (ICQA and
  CRETs share ids, Inbound and DA can overlap), so evaluation order is part
  of the contract:

    1. ICQA   - id in ICQA set AND area equals the ICQA area
    2. CRETs  - id in CRETs set AND area equals the CRETs area
    3. DA     - id in DA set
    4. Inbound- id in Inbound set and NOT in DA set
    5. none   - excluded from department-level aggregation entirely
*/
package reconcile

// Bucketer resolves department bucket membership for one run's settings.
type Bucketer struct {
	rules map[Bucket]DepartmentRule
	sets  map[Bucket]IDSet
}

// NewBucketer precomputes the department-id sets.
func NewBucketer(s Settings) *Bucketer {
	b := &Bucketer{rules: s.Departments, sets: make(map[Bucket]IDSet, len(s.Departments))}
	for bucket, rule := range s.Departments {
		set := IDSet{}
		for _, id := range rule.DeptIDs {
			set.Add(id)
		}
		b.sets[bucket] = set
	}
	return b
}

// BucketOf classifies a profile. The empty string means "no bucket": the
// worker still appears in row-level audit exports tagged "Other".
func (b *Bucketer) BucketOf(p WorkerProfile) Bucket {
	if b.inBucket(BucketICQA, p.DepartmentID) && p.ManagementAreaID == b.rules[BucketICQA].ManagementAreaID {
		return BucketICQA
	}
	if b.inBucket(BucketCRETs, p.DepartmentID) && p.ManagementAreaID == b.rules[BucketCRETs].ManagementAreaID {
		return BucketCRETs
	}
	if b.inBucket(BucketDA, p.DepartmentID) {
		return BucketDA
	}
	if b.inBucket(BucketInbound, p.DepartmentID) && !b.inBucket(BucketDA, p.DepartmentID) {
		return BucketInbound
	}
	return ""
}

func (b *Bucketer) inBucket(bucket Bucket, deptID string) bool {
	set, ok := b.sets[bucket]
	return ok && set.Has(deptID)
}
