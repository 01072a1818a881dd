/*
xlsx.go - Site-split workbook

PURPOSE:
  Renders the site-split view as a standalone workbook: one sheet with the
  per-cohort rows in the SDC / ICQA / IXD column layout, and a second sheet
  with the planned-vs-present ops tables. The downstream consumer pastes
  these numbers into a formula-bearing site template, so only raw counts are
  written here, never derived percentages.
*/
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/phoenix/attendance-engine/reconcile"
)

const (
	sheetSiteSplit = "Site Split"
	sheetOps       = "Ops"
)

// SiteSplitWorkbook renders the result's site-split and ops views into a
// fresh xlsx workbook and returns its bytes.
func SiteSplitWorkbook(result *reconcile.Result) ([]byte, error) {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if err := wb.SetSheetName(wb.GetSheetName(0), sheetSiteSplit); err != nil {
		return nil, err
	}
	if err := writeSiteSplit(wb, result); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(sheetOps); err != nil {
		return nil, err
	}
	if err := writeOps(wb, result.Ops); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSiteSplit(wb *excelize.File, result *reconcile.Result) error {
	if err := setRow(wb, sheetSiteSplit, 1, []any{
		fmt.Sprintf("Site Split — %s (%s) %s shift", result.Day, result.DayName, result.Shift),
	}); err != nil {
		return err
	}
	if err := setRow(wb, sheetSiteSplit, 2, []any{
		"Cohort",
		"Inbound AMZN", "Inbound TEMP", "DA AMZN", "DA TEMP", "SDC Total",
		"ICQA AMZN", "ICQA TEMP",
		"CRETs AMZN", "CRETs TEMP", "IXD Total",
		"Grand Total",
	}); err != nil {
		return err
	}

	for i, row := range result.SiteSplit {
		cells := []any{
			string(row.Cohort),
			row.InboundAMZN, row.InboundTEMP, row.DAAMZN, row.DATEMP, row.SDCTotal,
			row.ICQAAMZN, row.ICQATEMP,
			row.CRETsAMZN, row.CRETsTEMP, row.IXDTotal,
			row.GrandTotal,
		}
		if err := setRow(wb, sheetSiteSplit, 3+i, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeOps(wb *excelize.File, ops reconcile.OpsReport) error {
	line := 1
	for _, site := range ops.Sites {
		if err := setRow(wb, sheetOps, line, []any{site.Site}); err != nil {
			return err
		}
		line++
		if err := setRow(wb, sheetOps, line, []any{"Shift Code", "Planned HC", "Present HC", "Delta"}); err != nil {
			return err
		}
		line++
		for _, l := range site.Lines {
			if err := setRow(wb, sheetOps, line, []any{l.Code, l.Planned, l.Present, l.Delta}); err != nil {
				return err
			}
			line++
		}
		if err := setRow(wb, sheetOps, line, []any{"Total", site.TotalPlanned, site.TotalPresent, site.TotalDelta}); err != nil {
			return err
		}
		line += 2
	}

	if err := setRow(wb, sheetOps, line, []any{"Swap Out", ops.SwapOut}); err != nil {
		return err
	}
	if err := setRow(wb, sheetOps, line+1, []any{"Swap In", ops.SwapIn}); err != nil {
		return err
	}
	if err := setRow(wb, sheetOps, line+2, []any{"VET", ops.VET}); err != nil {
		return err
	}
	return setRow(wb, sheetOps, line+3, []any{"VTO", ops.VTO})
}

func setRow(wb *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}
