// =============================================================================
// BOM Converter - Flattener
// =============================================================================
//
// This module walks the forest and produces the canonical flattened
// "header + children" row sequence consumed by the BOM report.
//
// EMISSION ORDER (per node with children):
//   1. One MaterialHeader row for the node.
//   2. One ComponentLine row per direct child, in child order, item numbers
//      0010, 0020, ... reset for each parent.
//   3. Only then descend into each child that itself has children.
//
// All of a node's immediate children appear contiguously before any
// grandchild row. A childless node emits nothing of its own; it already
// appeared as a ComponentLine under its parent. A childless root emits
// nothing at all. Separator rows between top-level groups are the sink's
// concern; the flattener only delimits the groups.
//
// =============================================================================

package hierarchy

import (
	"fmt"

	"github.com/gkovacs78/bom-converter/internal/types"
)

// itemNumberStart and itemNumberStep define the per-parent component
// numbering: 0010, 0020, 0030, ...
const (
	itemNumberStart = 10
	itemNumberStep  = 10
)

// Flatten produces the full output row sequence for the forest, all
// top-level groups concatenated in root order.
func Flatten(forest *types.Forest) []types.OutputRow {
	var rows []types.OutputRow
	for _, group := range FlattenGroups(forest) {
		rows = append(rows, group...)
	}
	return rows
}

// FlattenGroups produces one row slice per top-level group, in root order.
// Childless roots yield no group. The sink uses the group boundaries to
// insert separator rows.
func FlattenGroups(forest *types.Forest) [][]types.OutputRow {
	var groups [][]types.OutputRow
	for _, root := range forest.Roots {
		if !root.HasChildren() {
			continue
		}
		var rows []types.OutputRow
		flattenNode(root, &rows)
		groups = append(groups, rows)
	}
	return groups
}

// flattenNode emits the node's header row, its direct-child component rows,
// and then recurses into children that have children of their own. Recursion
// depth is bounded by the hierarchy depth.
func flattenNode(node *types.Node, rows *[]types.OutputRow) {
	*rows = append(*rows, types.OutputRow{
		Kind:       types.MaterialHeader,
		MaterialID: node.Record.Identifier,
	})

	itemNumber := itemNumberStart
	for _, child := range node.Children {
		*rows = append(*rows, types.OutputRow{
			Kind:        types.ComponentLine,
			MaterialID:  node.Record.Identifier,
			ComponentID: child.Record.Identifier,
			Quantity:    child.Record.Quantity,
			Unit:        child.Record.Unit,
			ItemNumber:  FormatItemNumber(itemNumber),
		})
		itemNumber += itemNumberStep
	}

	for _, child := range node.Children {
		if child.HasChildren() {
			flattenNode(child, rows)
		}
	}
}

// FormatItemNumber renders an item number as a 4-digit zero-padded string.
func FormatItemNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}
