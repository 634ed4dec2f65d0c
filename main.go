// =============================================================================
// BOM Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the BOM Converter CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   bomconv process   - Convert all workbooks in the input directory
//   bomconv validate  - Validate the configuration without processing
//   bomconv version   - Display the application version
//
// ARCHITECTURE:
//   cmd/        : CLI command definitions (Cobra)
//   internal/   : Pipeline stages (extractor, hierarchy, reader, writer)
//   pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/gkovacs78/bom-converter/cmd"
)

func main() {
	cmd.Execute()
}
