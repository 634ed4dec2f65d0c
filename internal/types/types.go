// =============================================================================
// BOM Converter - Shared Types
// =============================================================================
//
// This package contains the value types shared by every pipeline stage, so
// that the stages can depend on each other's output without import cycles:
//   - extractor   produces LevelRecord
//   - hierarchy   consumes LevelRecord, produces Node / Forest / OutputRow
//   - bomwriter   consumes OutputRow
//
// =============================================================================

package types

import "fmt"

// =============================================================================
// INPUT RECORDS
// =============================================================================

// LevelRecord is one parsed input line from the level report.
type LevelRecord struct {
	// Level is the hierarchy depth marker (1 = top).
	Level int

	// Identifier is the item's article number, rendered as a plain string.
	// Integer-like source values never carry a trailing ".0".
	Identifier string

	// Quantity is the raw quantity cell value, empty when absent.
	Quantity string

	// Unit is the unit of measure, uppercased, empty when absent.
	Unit string

	// SourceIndex is the record's 0-based row index in the source sheet.
	// Used only for stable ordering and diagnostics.
	SourceIndex int
}

// =============================================================================
// HIERARCHY
// =============================================================================

// Node is one node of the reconstructed hierarchy. A node exclusively owns
// its children; every child's level equals the node's level plus one.
type Node struct {
	// Record is the input record this node wraps.
	Record LevelRecord

	// Children are the direct descendants, in source order.
	Children []*Node
}

// HasChildren reports whether the node has at least one direct child.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Forest is the ordered collection of root nodes, one per level-1 record,
// in the order those records appeared in the source.
type Forest struct {
	Roots []*Node
}

// =============================================================================
// OUTPUT ROWS
// =============================================================================

// RowKind distinguishes the two kinds of rows the flattener emits.
type RowKind int

const (
	// MaterialHeader is a row representing a node as a parent. All
	// component-specific fields are empty.
	MaterialHeader RowKind = iota

	// ComponentLine is a row representing one direct child relationship,
	// carrying component id, quantity, unit and item number.
	ComponentLine
)

// String returns the row kind name for logs and test output.
func (k RowKind) String() string {
	switch k {
	case MaterialHeader:
		return "MaterialHeader"
	case ComponentLine:
		return "ComponentLine"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// OutputRow is one row to be appended to the BOM report. Rows are produced
// once by the flattener, in final emission order, and are never mutated.
type OutputRow struct {
	// Kind is MaterialHeader or ComponentLine.
	Kind RowKind

	// MaterialID is the owning node's identifier, set for both kinds.
	MaterialID string

	// ComponentID is the child's identifier, ComponentLine only.
	ComponentID string

	// Quantity is the child's quantity, ComponentLine only.
	Quantity string

	// Unit is the child's unit, ComponentLine only.
	Unit string

	// ItemNumber is the zero-padded per-parent sequence marker ("0010",
	// "0020", ...), ComponentLine only. MaterialHeader rows carry "".
	ItemNumber string
}

// =============================================================================
// DIAGNOSTICS
// =============================================================================

// Diagnostics counts the data-quality issues encountered while extracting
// and building. None of them are errors; the pipeline degrades gracefully
// and surfaces the counts to the caller.
type Diagnostics struct {
	// SkippedRows counts input rows excluded by the extractor (blank or
	// digit-free level cell).
	SkippedRows int

	// DegradedAttachments counts records whose level jumped ahead of the
	// open ancestry and were attached at the closest consistent ancestor.
	DegradedAttachments int

	// OrphanRoots counts records promoted to root level because no open
	// ancestor existed at all.
	OrphanRoots int
}

// Merge adds the counts of other into d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.SkippedRows += other.SkippedRows
	d.DegradedAttachments += other.DegradedAttachments
	d.OrphanRoots += other.OrphanRoots
}

// Clean reports whether no data-quality issues were recorded.
func (d Diagnostics) Clean() bool {
	return d == Diagnostics{}
}
