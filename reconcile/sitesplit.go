/*
sitesplit.go - Site-group aggregation

PURPOSE:
  Re-aggregates the department buckets into the site groups used by the
  site-split report and its workbook export:

    YHM2-SDC = Inbound + DA
    ICQA     = ICQA
    YDD2-IXD = CRETs

  The detailed row keeps the per-department AMZN/TEMP cells alongside the
  site subtotals, matching the downstream spreadsheet's column layout.
*/
package reconcile

// SiteSplitRow is one cohort's counts in the site-split column layout.
type SiteSplitRow struct {
	Cohort      CohortName `json:"cohort"`
	InboundAMZN int        `json:"inbound_amzn"`
	InboundTEMP int        `json:"inbound_temp"`
	DAAMZN      int        `json:"da_amzn"`
	DATEMP      int        `json:"da_temp"`
	SDCTotal    int        `json:"sdc_total"`
	ICQAAMZN    int        `json:"icqa_amzn"`
	ICQATEMP    int        `json:"icqa_temp"`
	CRETsAMZN   int        `json:"crets_amzn"`
	CRETsTEMP   int        `json:"crets_temp"`
	IXDTotal    int        `json:"ixd_total"`
	GrandTotal  int        `json:"grand_total"`
}

// BuildSiteSplit converts the reconciliation rows into site-split rows,
// preserving cohort order.
func BuildSiteSplit(rows map[CohortName]BucketTable) []SiteSplitRow {
	out := make([]SiteSplitRow, 0, len(CohortOrder))
	for _, name := range CohortOrder {
		t := rows[name]
		inbound, da, icqa, crets := t[BucketInbound], t[BucketDA], t[BucketICQA], t[BucketCRETs]
		row := SiteSplitRow{
			Cohort:      name,
			InboundAMZN: inbound.AMZN,
			InboundTEMP: inbound.TEMP,
			DAAMZN:      da.AMZN,
			DATEMP:      da.TEMP,
			SDCTotal:    inbound.TOTAL + da.TOTAL,
			ICQAAMZN:    icqa.AMZN,
			ICQATEMP:    icqa.TEMP,
			CRETsAMZN:   crets.AMZN,
			CRETsTEMP:   crets.TEMP,
			IXDTotal:    crets.TOTAL,
		}
		row.GrandTotal = row.SDCTotal + icqa.TOTAL + row.IXDTotal
		out = append(out, row)
	}
	return out
}
