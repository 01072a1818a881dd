package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phoenix/attendance-engine/ingest"
)

func TestDecode_CSV(t *testing.T) {
	data := []byte("Employee ID,On Premise\n101,X\n102,\n")

	records, err := ingest.Decode(ingest.File{Name: "mytime.csv", Data: data})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "101", records[0]["Employee ID"])
	assert.Equal(t, "X", records[0]["On Premise"])
	assert.Equal(t, "", records[1]["On Premise"])
}

func TestDecode_CSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Employee ID\n101\n")...)

	records, err := ingest.Decode(ingest.File{Name: "roster.csv", Data: data})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0]["Employee ID"], "BOM must not corrupt the first header")
}

func TestDecode_SkipFirstDataRow(t *testing.T) {
	// The MyTime export carries a banner row under the headers.
	data := []byte("Employee ID,On Premise\nGenerated 2026-08-28,\n101,X\n")

	records, err := ingest.Decode(ingest.File{Name: "mytime.csv", Data: data, SkipFirstDataRow: true})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0]["Employee ID"])
}

func TestDecode_RaggedAndEmptyRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n,,\n4,5,6,7\n")

	records, err := ingest.Decode(ingest.File{Name: "x.csv", Data: data})

	require.NoError(t, err)
	require.Len(t, records, 2, "fully empty rows are dropped")
	assert.Equal(t, "", records[0]["C"], "short rows read as empty cells")
	assert.Equal(t, "6", records[1]["C"], "extra cells are ignored")
}

func TestDecode_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"Employee ID", "Hours"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{"101", 10}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	records, err := ingest.Decode(ingest.File{Name: "vac.xlsx", Data: buf.Bytes()})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0]["Employee ID"])
	assert.Equal(t, "10", records[0]["Hours"])
}

func TestDecode_Empty(t *testing.T) {
	records, err := ingest.Decode(ingest.File{Name: "none.csv"})
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ingest.Decode(ingest.File{Name: "header-only.csv", Data: []byte("A,B\n")})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeAll(t *testing.T) {
	files := map[string]ingest.File{
		"roster": {Name: "roster.csv", Data: []byte("Employee ID\n1\n2\n")},
		"mytime": {Name: "mytime.csv", Data: []byte("Employee ID,On Premise\nbanner,\n1,X\n"), SkipFirstDataRow: true},
	}

	decoded, err := ingest.DecodeAll(files)

	require.NoError(t, err)
	assert.Len(t, decoded["roster"], 2)
	assert.Len(t, decoded["mytime"], 1)
}

func TestDecodeAll_BadWorkbookFailsBatch(t *testing.T) {
	files := map[string]ingest.File{
		"roster": {Name: "roster.csv", Data: []byte("Employee ID\n1\n")},
		"vet":    {Name: "vet.xlsx", Data: []byte("this is not a workbook")},
	}

	_, err := ingest.DecodeAll(files)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vet")
}
