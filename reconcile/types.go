/*
Package reconcile turns a day's worth of loosely-structured workforce
spreadsheets into a department-by-department attendance reconciliation.

PURPOSE:
  Six independently-sourced tabular inputs (roster, time-clock, vacation
  hours, shift-swap requests, VET/VTO opportunity acceptances) rarely agree
  on column names, id formats, or date formats. This package normalizes all
  of them, classifies every rostered worker into exactly one cohort, and
  folds the cohorts into per-department AMZN/TEMP headcounts plus a
  row-level audit trail for every scheduled-but-absent worker.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record:        One decoded spreadsheet row (header -> cell value)
  - WorkerProfile: A roster row after normalization
  - Bucket/Counts: Department buckets and their AMZN/TEMP/TOTAL tallies
  - Settings:      The site-specific rule set (defaults in package config)
  - RunContext:    Everything one reconciliation run needs, passed explicitly

DESIGN PRINCIPLES:
  1. No ambient state: every stage takes a RunContext and returns new values.
  2. Presence comes only from the time-clock; the roster can never set it.
  3. Row-level garbage is skipped, never fatal; missing required inputs fail
     the whole run before any output is produced.
  4. Fuzzy classification (employment type, opportunity type) is an ordered
     keyword rule table, not control flow, so sites can extend it.

SEE ALSO:
  - run.go:     Pipeline orchestration and the Result type
  - cohorts.go: Exclusion priority and cohort derivation
  - config:     Default settings and settings.json loading
*/
package reconcile

import "log/slog"

// =============================================================================
// RECORDS - Decoded spreadsheet rows
// =============================================================================

// Record is one tabular row keyed by its raw header names.
// The ingest package produces these from CSV or XLSX files.
type Record map[string]string

// =============================================================================
// WORKER PROFILE
// =============================================================================

// EmploymentType classifies a worker's badge/employment relationship.
type EmploymentType string

const (
	EmploymentAMZN    EmploymentType = "AMZN"
	EmploymentTEMP    EmploymentType = "TEMP"
	EmploymentUnknown EmploymentType = "UNKNOWN"
)

// WorkerProfile is one roster row after normalization. OnPremises is
// populated exclusively by the presence resolver; the roster builder always
// leaves it false.
type WorkerProfile struct {
	ID               string         `json:"id"`
	DepartmentID     string         `json:"department_id"`
	ManagementAreaID string         `json:"management_area_id"`
	EmploymentType   EmploymentType `json:"employment_type"`
	CornerCode       string         `json:"corner_code"`
	HireDate         string         `json:"hire_date,omitempty"` // YYYY-MM-DD, "" when absent/unparseable
	OnPremises       bool           `json:"on_premises"`
}

// =============================================================================
// DEPARTMENT BUCKETS AND COUNTS
// =============================================================================

// Bucket is one of the fixed named department groupings.
type Bucket string

const (
	BucketInbound Bucket = "Inbound"
	BucketDA      Bucket = "DA"
	BucketICQA    Bucket = "ICQA"
	BucketCRETs   Bucket = "CRETs"
)

// Buckets lists the department buckets in display order.
var Buckets = []Bucket{BucketInbound, BucketDA, BucketICQA, BucketCRETs}

// Counts is the per-bucket tally. UNKNOWN employment types contribute to no
// counter, so AMZN + TEMP == TOTAL always holds.
type Counts struct {
	AMZN  int `json:"amzn"`
	TEMP  int `json:"temp"`
	TOTAL int `json:"total"`
}

// BucketTable maps each department bucket to its counts.
type BucketTable map[Bucket]Counts

// SumTotals returns the grand total across all buckets.
func (t BucketTable) SumTotals() int {
	sum := 0
	for _, b := range Buckets {
		sum += t[b].TOTAL
	}
	return sum
}

// =============================================================================
// COHORTS
// =============================================================================

// CohortName labels one row of the reconciliation table.
type CohortName string

const (
	CohortRegularExpected  CohortName = "Regular HC (Cohort Expected)"
	CohortRegularPresent   CohortName = "Regular HC Present (Excluding Swaps)"
	CohortSwapOut          CohortName = "Shift Swap Out"
	CohortSwapInExpected   CohortName = "Shift Swap Expected"
	CohortSwapInPresent    CohortName = "Shift Swap Present"
	CohortVTO              CohortName = "VTO"
	CohortVETExpected      CohortName = "VET Expected"
	CohortVETPresent       CohortName = "VET Present"
)

// CohortOrder lists the reconciliation table rows in display order.
var CohortOrder = []CohortName{
	CohortRegularExpected,
	CohortRegularPresent,
	CohortSwapOut,
	CohortSwapInExpected,
	CohortSwapInPresent,
	CohortVTO,
	CohortVETExpected,
	CohortVETPresent,
}

// =============================================================================
// SETTINGS - Site-specific rules consumed by the engine
// =============================================================================
// The engine defines the shapes; package config owns the defaults and the
// settings.json mapping, the same way a policy factory feeds a ledger.

// DepartmentRule decides bucket membership: a department-id allowlist plus an
// optional management-area tiebreak for buckets whose id sets overlap.
type DepartmentRule struct {
	DeptIDs          []string `json:"dept_ids"`
	ManagementAreaID string   `json:"management_area_id,omitempty"`
}

// KeywordRule maps substring matches on a free-text field to a classification.
// Rules are evaluated in order; the first rule with any matching keyword wins.
type KeywordRule struct {
	Keywords []string `json:"keywords"`
	Result   string   `json:"result"`
}

// SwapMapping carries the swap files' column aliases and approval vocabulary.
type SwapMapping struct {
	ID               []string `json:"id"`
	Status           []string `json:"status"`
	SkipDate         []string `json:"skip_date"`
	WorkDate         []string `json:"work_date"`
	ApprovedStatuses []string `json:"approved_statuses"`
}

// RosterColumns lists acceptable header aliases for the roster file.
type RosterColumns struct {
	ID             []string `json:"id"`
	EmploymentType []string `json:"employment_type"`
	Department     []string `json:"department"`
	Area           []string `json:"area"`
	Corner         []string `json:"corner"`
	ShiftPattern   []string `json:"shift_pattern"`
	HireDate       []string `json:"hire_date"`
}

// TimeclockColumns lists acceptable header aliases for the time-clock file.
type TimeclockColumns struct {
	ID         []string `json:"id"`
	OnPremises []string `json:"on_premises"`
}

// LeaveColumns lists acceptable header aliases for the vacation/hours file.
type LeaveColumns struct {
	ID    []string `json:"id"`
	Hours []string `json:"hours"`
	Code  []string `json:"code"`
	Date  []string `json:"date"`
}

// OpportunityColumns lists acceptable header aliases for the VET/VTO file.
// The date-bearing columns are tried in priority order: acceptance time,
// opportunity creation time, posted date, then a generic shift-date fallback.
type OpportunityColumns struct {
	ID             []string `json:"id"`
	Type           []string `json:"type"`
	AcceptedCount  []string `json:"accepted_count"`
	AcceptedFlag   []string `json:"accepted_flag"`
	AcceptanceTime []string `json:"acceptance_time"`
	CreatedAt      []string `json:"created_at"`
	PostedDate     []string `json:"posted_date"`
	ShiftDate      []string `json:"shift_date"`
	OpportunityID  []string `json:"opportunity_id"`
}

// ColumnAliases groups the per-source alias lists.
type ColumnAliases struct {
	Roster      RosterColumns      `json:"roster"`
	Timeclock   TimeclockColumns   `json:"timeclock"`
	Leave       LeaveColumns       `json:"leave"`
	Opportunity OpportunityColumns `json:"opportunity"`
}

// Settings bundles every site-specific rule the engine consumes.
type Settings struct {
	Departments   map[Bucket]DepartmentRule      `json:"departments"`
	ShiftSchedule map[string]map[string][]string `json:"shift_schedule"` // shift -> weekday -> corner codes
	PresentMarkers []string                      `json:"present_markers"`
	SwapMapping   SwapMapping                    `json:"swap_mapping"`
	Columns       ColumnAliases                  `json:"columns"`

	// Ordered keyword tables. Employment rules resolve to AMZN/TEMP;
	// opportunity rules resolve to VTO/VET.
	EmploymentRules  []KeywordRule `json:"employment_rules"`
	OpportunityRules []KeywordRule `json:"opportunity_rules"`

	// Thresholds and toggled policies.
	VacationMinHours      float64 `json:"vacation_min_hours"`
	BankedHolidayMinHours float64 `json:"banked_holiday_min_hours"`
	NewHireDays           int     `json:"new_hire_days"`
	CornerPrefixLen       int     `json:"corner_prefix_len"`

	// Planned headcount per ops site group per corner code, for the
	// planned-vs-present view.
	PlannedHeadcount map[string]map[string]int `json:"planned_headcount"`
}

// =============================================================================
// RUN CONTEXT
// =============================================================================

// Sources holds the decoded record sets for one run. Only Roster and
// Timeclock are required; the rest may be nil.
type Sources struct {
	Roster        []Record
	Timeclock     []Record
	Leave         []Record
	SwapOut       []Record
	SwapIn        []Record
	Opportunities []Record
}

// RunContext bundles everything one reconciliation run needs. Stages read
// from it and return new structures; nothing in it is mutated mid-run.
type RunContext struct {
	Settings        Settings
	Day             string // canonical YYYY-MM-DD
	Shift           string // schedule key, e.g. "Day" or "Night"
	ExcludeNewHires bool
	FilterByCorner  bool
	Sources         Sources
	Logger          *slog.Logger
}
