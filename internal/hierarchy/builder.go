// =============================================================================
// BOM Converter - Hierarchy Builder
// =============================================================================
//
// This module reconstructs the implicit parent/child hierarchy from the flat
// record sequence. Source order is the only ancestry signal: a record at
// level L is a child of the most recently opened record at level L-1.
//
// BUILD ALGORITHM (single linear pass):
//   An ancestor stack holds the currently open node per level, keyed by the
//   node's actual level. For each record at level L:
//     - Every open node at level >= L is closed first, so a repeated L with
//       no intervening L-1 record starts a new sibling branch under the same
//       open parent, never under the previous same-level node.
//     - An open ancestor at exactly L-1 makes the record its next child.
//     - A level that jumps past the open ancestry attaches under the
//       deepest open ancestor; with nothing open at all the record becomes
//       a root, an orphan root when L > 1. Both irregular cases are
//       counted, never fatal.
//
// The stack is keyed by level rather than by slice position: after a jump
// attaches a node several levels deeper than its parent, later records must
// still resolve ancestors by the level they actually carry.
//
// The builder never fails on messy level progressions. A non-positive level
// is an upstream contract breach and fails fast.
//
// =============================================================================

package hierarchy

import (
	"fmt"

	"github.com/gkovacs78/bom-converter/internal/types"
)

// openNode pairs an open node with the level its record carries. Levels on
// the stack are strictly increasing but not necessarily contiguous: a
// degraded attachment opens a node deeper than parent level + 1.
type openNode struct {
	level int
	node  *types.Node
}

// Build consumes the ordered record sequence and produces the forest, one
// root per level-1 record in source order. Complexity is O(n); the stack
// depth is bounded by the deepest level observed.
func Build(records []types.LevelRecord) (*types.Forest, types.Diagnostics, error) {
	forest := &types.Forest{}
	var diag types.Diagnostics

	var stack []openNode

	for _, record := range records {
		if record.Level < 1 {
			return nil, diag, fmt.Errorf(
				"record %q (row %d) has non-positive level %d",
				record.Identifier, record.SourceIndex, record.Level)
		}

		node := &types.Node{Record: record}

		// Close every open node at this level or deeper. What remains on
		// top is the nearest open ancestor, if any.
		for len(stack) > 0 && stack[len(stack)-1].level >= record.Level {
			stack = stack[:len(stack)-1]
		}

		switch {
		case len(stack) == 0:
			// Nothing open above this record; it becomes a root. A root
			// below level 1 is an orphan and counted as such.
			forest.Roots = append(forest.Roots, node)
			if record.Level > 1 {
				diag.OrphanRoots++
			}

		case stack[len(stack)-1].level == record.Level-1:
			// The open ancestor sits exactly one level up; regular child.
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)

		default:
			// Level jumped past the open ancestry; attach under the
			// deepest open ancestor.
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
			diag.DegradedAttachments++
		}

		stack = append(stack, openNode{level: record.Level, node: node})
	}

	return forest, diag, nil
}
