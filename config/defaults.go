/*
defaults.go - Built-in site rule set

PURPOSE:
  The engine (package reconcile) defines the rule shapes; this file owns the
  values. Everything here can be overridden by a settings.json file, so a new
  site deploys by editing JSON, not by recompiling.

  The alias lists encode the header vocabulary of the upstream exports as
  actually observed: the roster export, the MyTime on-premises report, the
  vacation/hours ledger, the shift-swap request sheets, and the VET/VTO
  opportunity feed (whose headers are dotted JSON paths like
  "opportunity.acceptedCount").
*/
package config

import "github.com/phoenix/attendance-engine/reconcile"

// Defaults returns the built-in rule set. Callers get a fresh value each
// time; mutating the result never affects later calls.
func Defaults() reconcile.Settings {
	return reconcile.Settings{
		Departments: map[reconcile.Bucket]reconcile.DepartmentRule{
			reconcile.BucketInbound: {
				DeptIDs: []string{"1211010", "1211020", "1299010", "1299020"},
			},
			reconcile.BucketDA: {
				DeptIDs: []string{"1211030", "1211040", "1299030", "1299040"},
			},
			reconcile.BucketICQA: {
				DeptIDs:          []string{"1299070", "1211070"},
				ManagementAreaID: "27",
			},
			reconcile.BucketCRETs: {
				DeptIDs:          []string{"1299070", "1211070"},
				ManagementAreaID: "22",
			},
		},

		ShiftSchedule: map[string]map[string][]string{
			"Day": {
				"Sunday":    {"DA", "DN", "DL", "DH"},
				"Monday":    {"DA", "DL", "DC", "DH"},
				"Tuesday":   {"DA", "DL", "DC"},
				"Wednesday": {"DA", "DB"},
				"Thursday":  {"DB", "DN", "DC"},
				"Friday":    {"DB", "DN", "DC", "DH"},
				"Saturday":  {"DB", "DN", "DL", "DH"},
			},
			"Night": {
				"Sunday":    {"NA", "NN", "NL", "NH"},
				"Monday":    {"NA", "NL", "NC", "NH"},
				"Tuesday":   {"NA", "NL", "NC"},
				"Wednesday": {"NA", "NB"},
				"Thursday":  {"NB", "NN", "NC"},
				"Friday":    {"NB", "NN", "NC", "NH"},
				"Saturday":  {"NB", "NN", "NL", "NH"},
			},
		},

		PresentMarkers: []string{"X", "Y", "YES", "TRUE", "1"},

		SwapMapping: reconcile.SwapMapping{
			ID:               []string{"Employee 1 ID", "Employee ID", "Person ID", "Person Number", "Badge ID", "ID", "Associate ID"},
			Status:           []string{"Status", "Swap Status"},
			SkipDate:         []string{"Date to Skip", "Skip Date", "Skip"},
			WorkDate:         []string{"Date to Work", "Work Date", "Work"},
			ApprovedStatuses: []string{"Approved", "Completed", "Accepted"},
		},

		Columns: reconcile.ColumnAliases{
			Roster: reconcile.RosterColumns{
				ID:             []string{"Employee ID", "Person ID", "Person Number", "Badge ID", "ID"},
				EmploymentType: []string{"Employment Type", "EmploymentType", "Type"},
				Department:     []string{"Department ID", "Department", "Dept ID", "Dept"},
				Area:           []string{"Management Area ID", "Area ID", "Area"},
				Corner:         []string{"Corner", "Corner Code", "CornerName", "Corner ID"},
				ShiftPattern:   []string{"Shift Pattern", "Shift Code", "Shift"},
				HireDate:       []string{"Employment Start Date", "Hire Date", "Start Date"},
			},
			Timeclock: reconcile.TimeclockColumns{
				ID:         []string{"Employee ID", "Person ID", "Person Number", "Badge ID", "ID", "EID"},
				OnPremises: []string{"On Premise", "On-Premise", "OnPremise", "On Site", "OnSite", "On Prem"},
			},
			Leave: reconcile.LeaveColumns{
				ID:    []string{"Employee ID", "Person ID", "Person Number", "Badge ID", "ID"},
				Hours: []string{"Hours", "Payable Hours", "Total Hours", "Duration"},
				Code:  []string{"Comment", "Pay Code", "Description", "Pay Reason"},
				Date:  []string{"Date", "Transaction Date", "Posting Date"},
			},
			Opportunity: reconcile.OpportunityColumns{
				ID:             []string{"employeeId", "EID", "Employee ID", "Person ID", "Person Number", "Badge ID", "ID"},
				Type:           []string{"opportunity.type", "Type", "Opportunity Type"},
				AcceptedCount:  []string{"opportunity.acceptedCount", "Accepted", "Accepted Count"},
				AcceptedFlag:   []string{"isAccepted"},
				AcceptanceTime: []string{"acceptanceTime"},
				CreatedAt:      []string{"opportunityCreatedAt", "opportunity.createdAt"},
				PostedDate:     []string{"opportunity.postedDate", "postedDate", "Posting Date"},
				ShiftDate:      []string{"Shift Date", "Opportunity Date", "Date"},
				OpportunityID:  []string{"opportunity.id", "Opportunity ID", "opportunityId"},
			},
		},

		EmploymentRules: []reconcile.KeywordRule{
			{Keywords: []string{"temp", "agency", "contingent", "randstad", "adecco", "staffing"}, Result: string(reconcile.EmploymentTEMP)},
			{Keywords: []string{"amzn", "amazon", "blue badge", "full time", "part time", "fulltime", "parttime"}, Result: string(reconcile.EmploymentAMZN)},
		},
		OpportunityRules: []reconcile.KeywordRule{
			{Keywords: []string{"vto"}, Result: "VTO"},
			{Keywords: []string{"vet"}, Result: "VET"},
		},

		VacationMinHours:      10,
		BankedHolidayMinHours: 12,
		NewHireDays:           3,
		CornerPrefixLen:       2,

		PlannedHeadcount: map[string]map[string]int{
			"YDD2": {
				"DA": 25, "DB": 30, "DC": 20, "DH": 15, "DL": 18, "DN": 22,
				"NA": 20, "NB": 25, "NC": 15, "NH": 12, "NL": 14, "NN": 18,
			},
			"YHM2": {
				"DA": 35, "DB": 40, "DC": 28, "DH": 20, "DL": 25, "DN": 30,
				"NA": 30, "NB": 35, "NC": 22, "NH": 18, "NL": 20, "NN": 25,
			},
		},
	}
}
