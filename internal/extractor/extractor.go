// =============================================================================
// BOM Converter - Record Extractor
// =============================================================================
//
// This module turns raw sheet rows into typed LevelRecords. It is the only
// stage that knows the source column layout.
//
// EXTRACTION RULES:
//   - The configured header rows are skipped.
//   - The level cell may hold a bare integer or free text containing one
//     ("Level 2", "Szint: 3"); the first run of decimal digits wins.
//   - Rows with a blank or digit-free level cell are skipped and counted,
//     never treated as errors.
//   - Identifiers that arrive as integer-like numerics ("123.0") are
//     rendered without the floating-point artifact ("123").
//   - Units are uppercased; blank identifier/unit/quantity cells become "".
//
// =============================================================================

package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gkovacs78/bom-converter/internal/types"
)

// digitRun matches the first run of decimal digits in a level cell.
var digitRun = regexp.MustCompile(`\d+`)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// ColumnLayout describes where the extractor finds its fields in a source
// row. Column indices are 0-based (A=0, B=1, ...).
type ColumnLayout struct {
	// LevelColumn holds the hierarchy depth marker.
	LevelColumn int

	// IdentifierColumn holds the article number.
	IdentifierColumn int

	// UnitColumn holds the unit of measure.
	UnitColumn int

	// QuantityColumn holds the quantity.
	QuantityColumn int

	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
}

// DefaultLayout returns the layout of the standard level report:
// A=level, B=article number, D=unit, E=quantity, one header row.
func DefaultLayout() ColumnLayout {
	return ColumnLayout{
		LevelColumn:      0,
		IdentifierColumn: 1,
		UnitColumn:       3,
		QuantityColumn:   4,
		HeaderRows:       1,
	}
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor converts raw rows into LevelRecords according to a ColumnLayout.
type Extractor struct {
	layout ColumnLayout
}

// New creates an Extractor for the given layout.
func New(layout ColumnLayout) *Extractor {
	return &Extractor{layout: layout}
}

// ExtractAll converts an ordered slice of raw rows into LevelRecords,
// preserving source order. Skipped rows are counted in the returned
// diagnostics. SourceIndex on each record is the row's index in rows.
func (e *Extractor) ExtractAll(rows [][]string) ([]types.LevelRecord, types.Diagnostics) {
	var records []types.LevelRecord
	var diag types.Diagnostics

	for i := e.layout.HeaderRows; i < len(rows); i++ {
		record, ok := e.ExtractRow(rows[i], i)
		if !ok {
			diag.SkippedRows++
			continue
		}
		records = append(records, record)
	}

	return records, diag
}

// ExtractRow converts a single raw row into a LevelRecord. The second return
// value is false when the row must be skipped (blank or digit-free level).
func (e *Extractor) ExtractRow(row []string, sourceIndex int) (types.LevelRecord, bool) {
	level, ok := parseLevel(cell(row, e.layout.LevelColumn))
	if !ok {
		return types.LevelRecord{}, false
	}

	return types.LevelRecord{
		Level:       level,
		Identifier:  NormalizeIdentifier(cell(row, e.layout.IdentifierColumn)),
		Quantity:    cell(row, e.layout.QuantityColumn),
		Unit:        strings.ToUpper(cell(row, e.layout.UnitColumn)),
		SourceIndex: sourceIndex,
	}, true
}

// LevelDistribution counts records per level. Used for the post-extraction
// summary log.
func LevelDistribution(records []types.LevelRecord) map[int]int {
	dist := make(map[int]int, 8)
	for _, r := range records {
		dist[r.Level]++
	}
	return dist
}

// MaxLevel returns the deepest level present, or 0 for no records.
func MaxLevel(records []types.LevelRecord) int {
	max := 0
	for _, r := range records {
		if r.Level > max {
			max = r.Level
		}
	}
	return max
}

// =============================================================================
// CELL PARSING
// =============================================================================

// cell safely fetches a trimmed cell value; short rows read as "".
func cell(row []string, index int) string {
	if index >= 0 && index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

// parseLevel extracts the hierarchy depth from a level cell. An integer cell
// is used as-is; otherwise the first digit run in the text is parsed. A cell
// with no digits yields ok=false.
func parseLevel(value string) (level int, ok bool) {
	if value == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}

	// The cell may be a numeric with decimals ("2.0") or free text
	// containing the level ("Level 2").
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f), true
	}

	match := digitRun.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeIdentifier renders an identifier cell without floating-point
// artifacts: "123.0" becomes "123". Non-numeric identifiers pass through
// unchanged.
func NormalizeIdentifier(value string) string {
	if value == "" {
		return ""
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
