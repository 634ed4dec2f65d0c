package xlsxreader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with the given sheet contents and returns
// its path.
func writeWorkbook(t *testing.T, name string, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for sheet, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
			first = false
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet, cell, value))
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRowsFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "report.xlsx", map[string][][]any{
		"Sheet1": {
			{"Szint", "Cikkszám"},
			{1, 100200},
			{2, 100201},
		},
	})

	rows, err := ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Szint", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "100201", rows[2][1])
}

func TestReadRowsExplicitSheet(t *testing.T) {
	path := writeWorkbook(t, "report.xlsx", map[string][][]any{
		"Adatok": {
			{"Szint"},
			{1},
		},
	})

	rows, err := ReadRows(path, "Adatok")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = ReadRows(path, "NoSuchSheet")
	require.Error(t, err)
}

func TestReadRowsFallsBackToSheetWithData(t *testing.T) {
	f := excelize.NewFile()
	// Leave the default sheet empty; put the data on a second sheet.
	_, err := f.NewSheet("Export")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Export", "A1", "Szint"))
	require.NoError(t, f.SetCellValue("Export", "A2", 1))

	path := filepath.Join(t.TempDir(), "secondary.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Szint", rows[0][0])
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
}
