// =============================================================================
// BOM Converter - Input Workbook Reader
// =============================================================================
//
// This module reads the raw rows of a level-report workbook. It is pure I/O
// plumbing: the extractor decides what the rows mean.
//
// SHEET SELECTION:
//   - An explicitly configured sheet name wins.
//   - Otherwise the first sheet is used.
//   - If the first sheet is empty, the remaining sheets are scanned for the
//     first one containing any rows. Some upstream exports place the data
//     on a secondary sheet.
//
// =============================================================================

package xlsxreader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadRows returns all rows of the selected sheet of the workbook at path.
// Pass sheetName == "" to auto-select.
func ReadRows(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input workbook: %w", err)
	}
	defer f.Close()

	if sheetName != "" {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		return rows, nil
	}

	first := f.GetSheetName(0)
	if first == "" {
		return nil, fmt.Errorf("input workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(first)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", first, err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	// First sheet is empty; fall back to the first sheet with data.
	for _, name := range f.GetSheetList() {
		if name == first {
			continue
		}
		if candidate, err := f.GetRows(name); err == nil && len(candidate) > 0 {
			return candidate, nil
		}
	}

	// No data anywhere; an empty input is a valid, empty outcome.
	return rows, nil
}
