// =============================================================================
// BOM Converter - Row Sink
// =============================================================================
//
// This module persists the flattened row groups into a copy of the BOM
// template workbook. It is the only stage touching physical storage on the
// output side.
//
// TARGET LAYOUT (1-based columns, the standard BOM template):
//   E (5)  Material
//   L (12) Item number ("0010", ...; empty on material rows)
//   N (14) Component
//   O (15) Quantity
//   P (16) Unit
//
// Data rows start at the configured offset: row 9 when template header rows
// 1-8 must be preserved, row 2 for plain sheets. Material rows write empty
// strings into the component columns rather than leaving the cells alone,
// so stale template content never shows through. An optional blank row
// separates top-level groups.
//
// =============================================================================

package bomwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gkovacs78/bom-converter/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls where and how the sink writes.
type Options struct {
	// TemplatePath is the BOM template workbook to copy from. When empty,
	// the sink writes into a fresh workbook.
	TemplatePath string

	// OutputPath is where the filled workbook is saved.
	OutputPath string

	// SheetName selects the target sheet; empty means the active sheet.
	SheetName string

	// StartRow is the first data row (1-based).
	StartRow int

	// MaterialColumn, ItemNumberColumn, ComponentColumn, QuantityColumn and
	// UnitColumn are 1-based target columns.
	MaterialColumn   int
	ItemNumberColumn int
	ComponentColumn  int
	QuantityColumn   int
	UnitColumn       int

	// SeparatorRows inserts one blank row between top-level groups.
	SeparatorRows bool
}

// DefaultOptions returns the standard template layout: data from row 9,
// columns E/L/N/O/P, no separator rows.
func DefaultOptions() Options {
	return Options{
		StartRow:         9,
		MaterialColumn:   5,
		ItemNumberColumn: 12,
		ComponentColumn:  14,
		QuantityColumn:   15,
		UnitColumn:       16,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer writes flattened row groups into the BOM workbook.
type Writer struct {
	opts Options
}

// New creates a Writer. Zero-valued layout fields are filled from
// DefaultOptions.
func New(opts Options) *Writer {
	def := DefaultOptions()
	if opts.StartRow == 0 {
		opts.StartRow = def.StartRow
	}
	if opts.MaterialColumn == 0 {
		opts.MaterialColumn = def.MaterialColumn
	}
	if opts.ItemNumberColumn == 0 {
		opts.ItemNumberColumn = def.ItemNumberColumn
	}
	if opts.ComponentColumn == 0 {
		opts.ComponentColumn = def.ComponentColumn
	}
	if opts.QuantityColumn == 0 {
		opts.QuantityColumn = def.QuantityColumn
	}
	if opts.UnitColumn == 0 {
		opts.UnitColumn = def.UnitColumn
	}
	return &Writer{opts: opts}
}

// Write persists the groups and saves the workbook to OutputPath. It
// returns the number of data rows written (separator rows excluded).
// An empty group list still produces the output file: an empty result is
// a valid outcome, not an error.
func (w *Writer) Write(groups [][]types.OutputRow) (int, error) {
	f, sheet, err := w.openTarget()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	currentRow := w.opts.StartRow
	written := 0

	for i, group := range groups {
		if w.opts.SeparatorRows && i > 0 {
			currentRow++
		}
		for _, row := range group {
			if err := w.writeRow(f, sheet, currentRow, row); err != nil {
				return written, err
			}
			currentRow++
			written++
		}
	}

	if err := f.SaveAs(w.opts.OutputPath); err != nil {
		return written, fmt.Errorf("failed to save output workbook: %w", err)
	}
	return written, nil
}

// openTarget opens the template workbook (or creates a fresh one) and
// resolves the target sheet name.
func (w *Writer) openTarget() (*excelize.File, string, error) {
	var f *excelize.File
	if w.opts.TemplatePath != "" {
		var err error
		f, err = excelize.OpenFile(w.opts.TemplatePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open template workbook: %w", err)
		}
	} else {
		f = excelize.NewFile()
	}

	sheet := w.opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if sheet == "" {
		f.Close()
		return nil, "", fmt.Errorf("template workbook has no sheets")
	}
	return f, sheet, nil
}

// writeRow writes one OutputRow into the given sheet row. Material rows
// blank the component columns explicitly.
func (w *Writer) writeRow(f *excelize.File, sheet string, rowNum int, row types.OutputRow) error {
	cells := []struct {
		col   int
		value string
	}{
		{w.opts.MaterialColumn, row.MaterialID},
		{w.opts.ItemNumberColumn, row.ItemNumber},
		{w.opts.ComponentColumn, row.ComponentID},
		{w.opts.QuantityColumn, row.Quantity},
		{w.opts.UnitColumn, row.Unit},
	}

	for _, c := range cells {
		cell, err := excelize.CoordinatesToCellName(c.col, rowNum)
		if err != nil {
			return fmt.Errorf("invalid target coordinates (%d,%d): %w", c.col, rowNum, err)
		}
		if err := f.SetCellValue(sheet, cell, c.value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
