/*
Package export renders run results into the downloadable artifacts the
dashboard offers: flat CSVs for the reconciliation table, the audit detail,
the no-show list and the excluded-id lists, plus the site-split workbook.

All renderers are pure: they take an already-computed result and return
bytes, so the HTTP layer stays a thin dispatcher.
*/
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/phoenix/attendance-engine/reconcile"
)

// ReconciliationCSV renders the cohort-by-bucket table, one cohort per row
// with AMZN/TEMP columns per bucket and a trailing total.
func ReconciliationCSV(result *reconcile.Result) ([]byte, error) {
	header := []string{"Cohort"}
	for _, b := range reconcile.Buckets {
		header = append(header, string(b)+" AMZN", string(b)+" TEMP")
	}
	header = append(header, "Total")

	rows := [][]string{header}
	for _, name := range reconcile.CohortOrder {
		table := result.Rows[name]
		row := []string{string(name)}
		for _, b := range reconcile.Buckets {
			row = append(row, itoa(table[b].AMZN), itoa(table[b].TEMP))
		}
		row = append(row, itoa(table.SumTotals()))
		rows = append(rows, row)
	}
	return writeCSV(rows)
}

// AuditCSV renders every audit detail row across all reasons, in the audit
// table's reason order.
func AuditCSV(report reconcile.AuditReport) ([]byte, error) {
	rows := [][]string{{"Employee ID", "Department", "Type", "Corner", "Date", "Reason"}}
	for _, reason := range reconcile.ReasonOrder {
		for _, d := range report.Details[reason] {
			rows = append(rows, detailRow(d))
		}
	}
	return writeCSV(rows)
}

// NoShowCSV renders the scheduled-but-absent list with each worker's reason.
func NoShowCSV(details []reconcile.AuditDetail) ([]byte, error) {
	rows := [][]string{{"Employee ID", "Department", "Type", "Corner", "Date", "Reason"}}
	for _, d := range details {
		rows = append(rows, detailRow(d))
	}
	return writeCSV(rows)
}

// IDListCSV renders a one-column id list, used for the vacation and banked
// holiday exclusion downloads.
func IDListCSV(ids []string) ([]byte, error) {
	rows := [][]string{{"id"}}
	for _, id := range ids {
		rows = append(rows, []string{id})
	}
	return writeCSV(rows)
}

func detailRow(d reconcile.AuditDetail) []string {
	return []string{d.ID, d.Bucket, string(d.EmploymentType), d.Corner, d.Day, string(d.Reason)}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itoa(n int) string { return strconv.Itoa(n) }
