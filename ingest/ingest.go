/*
Package ingest decodes uploaded spreadsheet files into tabular records.

PURPOSE:
  The engine consumes header-keyed records and does not care where they came
  from. This package owns the two wire formats the upstream systems actually
  export (CSV and XLSX), the per-source parsing quirks, and the concurrent
  decode of a whole upload batch.

QUIRKS:
  - The MyTime on-premises report carries a banner row between the header
    and the data; SkipFirstDataRow drops it.
  - CSV exports from some systems lead with a UTF-8 BOM; it is stripped so
    the first header still resolves.
  - Ragged rows (fewer cells than headers) are padded with empty strings,
    never rejected: row-level garbage is the engine's problem, not ours.
*/
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/phoenix/attendance-engine/reconcile"
)

// File is one uploaded spreadsheet awaiting decoding.
type File struct {
	// Name selects the decoder by extension: .xlsx (and .xlsm) go through
	// the workbook reader, everything else is treated as CSV.
	Name string
	Data []byte

	// SkipFirstDataRow drops the first record after the header row.
	SkipFirstDataRow bool
}

// Decode turns one file into records. An empty or header-only file decodes
// to zero records without error; the engine decides whether that is fatal.
func Decode(f File) ([]reconcile.Record, error) {
	if len(f.Data) == 0 {
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".xlsx", ".xlsm":
		return decodeXLSX(f)
	default:
		return decodeCSV(f)
	}
}

// DecodeAll decodes a batch of files concurrently, keyed by source name.
// The first decode error fails the batch; partial results are discarded.
func DecodeAll(files map[string]File) (map[string][]reconcile.Record, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	out := make(map[string][]reconcile.Record, len(files))

	for source, f := range files {
		wg.Add(1)
		go func(source string, f File) {
			defer wg.Done()
			records, err := Decode(f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("decoding %s (%s): %w", source, f.Name, err)
				return
			}
			out[source] = records
		}(source, f)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func decodeCSV(f File) ([]reconcile.Record, error) {
	data := bytes.TrimPrefix(f.Data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rowsToRecords(rows, f.SkipFirstDataRow), nil
}

func decodeXLSX(f File) ([]reconcile.Record, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(f.Data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return rowsToRecords(rows, f.SkipFirstDataRow), nil
}

// rowsToRecords maps the first row to headers and every later row to a
// Record. Fully empty rows are dropped; short rows read as empty cells.
func rowsToRecords(rows [][]string, skipFirstData bool) []reconcile.Record {
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]
	data := rows[1:]
	if skipFirstData && len(data) > 0 {
		data = data[1:]
	}

	var out []reconcile.Record
	for _, row := range data {
		if emptyRow(row) {
			continue
		}
		rec := make(reconcile.Record, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
