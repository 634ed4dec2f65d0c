package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gkovacs78/bom-converter/internal/config"
)

// testConfig builds a configuration rooted in a temp directory with the
// "plain" profile (no template needed, data from row 2).
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		InputDir:         filepath.Join(dir, "input"),
		OutputDir:        filepath.Join(dir, "output"),
		InputArchiveDir:  filepath.Join(dir, "archive"),
		Profile:          "plain",
		OutputNameFormat: "BOM_{stem}.xlsx",
		LogLevel:         "error",
		MaxConcurrency:   1,
		ArchiveOnSuccess: true,
		Profiles:         config.BuiltinProfiles(),
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0755))
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0755))
	return cfg
}

// writeLevelReport saves a level report workbook into the input directory.
// Each row is (level, identifier, unit, quantity) in columns A/B/D/E.
func writeLevelReport(t *testing.T, cfg *config.Config, name string, rows [][4]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Szint"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Cikkszám"))
	require.NoError(t, f.SetCellValue(sheet, "D1", "ME"))
	require.NoError(t, f.SetCellValue(sheet, "E1", "Mennyiség"))

	for i, row := range rows {
		rowNum := i + 2
		for col, value := range map[string]any{"A": row[0], "B": row[1], "D": row[2], "E": row[3]} {
			if value == nil {
				continue
			}
			cell, err := excelize.JoinCellName(col, rowNum)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	input := writeLevelReport(t, cfg, "report.xlsx", [][4]any{
		{1, 100200, "pcs", 1},
		{2, 100201, "pcs", 4},
		{3, 100202, "kg", 2.5},
		{2, 100203, "pcs", 1},
	})

	result := New(input, cfg, NewLogger("error")).Run()

	require.NoError(t, result.Error)
	require.True(t, result.Success)
	assert.Equal(t, 4, result.Stats.RecordsExtracted)
	assert.Equal(t, 3, result.Stats.MaxLevel)
	assert.Equal(t, 1, result.Stats.RootCount)
	assert.True(t, result.Stats.Diagnostics.Clean())
	// Root header + 2 components, 100201 header + 1 component.
	assert.Equal(t, 5, result.Stats.RowsWritten)

	// Output workbook exists and starts at row 2 with the root material.
	f, err := excelize.OpenFile(result.OutputFile)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)

	material, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "100200", material)

	component, err := f.GetCellValue(sheet, "N3")
	require.NoError(t, err)
	assert.Equal(t, "100201", component)

	item, err := f.GetCellValue(sheet, "L3")
	require.NoError(t, err)
	assert.Equal(t, "0010", item)

	unit, err := f.GetCellValue(sheet, "P3")
	require.NoError(t, err)
	assert.Equal(t, "PCS", unit)

	// Input archived on success.
	assert.NoFileExists(t, input)
	assert.FileExists(t, filepath.Join(cfg.InputArchiveDir, "report.xlsx"))
}

func TestRunCountsMessyDataWithoutFailing(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveOnSuccess = false
	input := writeLevelReport(t, cfg, "messy.xlsx", [][4]any{
		{1, 100200, "pcs", 1},
		{nil, 100298, "pcs", 1},     // blank level: skipped
		{"n/a", 100299, "pcs", 1},   // digit-free level: skipped
		{4, 100202, "pcs", 2},       // jumps past level 2: degraded
	})

	result := New(input, cfg, NewLogger("error")).Run()

	require.NoError(t, result.Error)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.RecordsExtracted)
	assert.Equal(t, 2, result.Stats.Diagnostics.SkippedRows)
	assert.Equal(t, 1, result.Stats.Diagnostics.DegradedAttachments)
	assert.FileExists(t, input, "input stays in place when archiving is off")
}

func TestRunEmptyReportIsValid(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveOnSuccess = false
	input := writeLevelReport(t, cfg, "empty.xlsx", nil)

	result := New(input, cfg, NewLogger("error")).Run()

	require.NoError(t, result.Error)
	require.True(t, result.Success)
	assert.Zero(t, result.Stats.RecordsExtracted)
	assert.Zero(t, result.Stats.RowsWritten)
	assert.FileExists(t, result.OutputFile, "an empty result still produces the artifact")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	input := writeLevelReport(t, cfg, "dry.xlsx", [][4]any{
		{1, 100200, "pcs", 1},
		{2, 100201, "pcs", 4},
	})

	conv := New(input, cfg, NewLogger("error"))
	conv.SetDryRun(true)
	result := conv.Run()

	require.True(t, result.Success)
	assert.Empty(t, result.OutputFile)
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, input, "dry run must not archive the input")
}

func TestRunMissingInputFails(t *testing.T) {
	cfg := testConfig(t)
	result := New(filepath.Join(cfg.InputDir, "missing.xlsx"), cfg, NewLogger("error")).Run()

	assert.False(t, result.Success)
	require.Error(t, result.Error)
}
