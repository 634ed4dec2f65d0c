// =============================================================================
// BOM Converter - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for a single level-report
// workbook:
//
//   1. Read the raw rows of the input workbook
//   2. Extract LevelRecords (skipping malformed rows)
//   3. Build the hierarchy forest from the record sequence
//   4. Flatten the forest into BOM row groups
//   5. Write the groups into a copy of the BOM template
//   6. Archive the processed input
//
// Each file is processed in its own goroutine by the process command; the
// converter holds no shared mutable state.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gkovacs78/bom-converter/internal/bomwriter"
	"github.com/gkovacs78/bom-converter/internal/config"
	"github.com/gkovacs78/bom-converter/internal/extractor"
	"github.com/gkovacs78/bom-converter/internal/hierarchy"
	"github.com/gkovacs78/bom-converter/internal/types"
	"github.com/gkovacs78/bom-converter/internal/xlsxreader"
	"github.com/gkovacs78/bom-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result is the outcome of processing a single file.
type Result struct {
	// FilePath is the processed input workbook.
	FilePath string

	// OutputFile is the generated BOM workbook; empty on failure.
	OutputFile string

	// Success reports whether the file was fully processed.
	Success bool

	// Error is set when Success is false.
	Error error

	// Stats holds the processing statistics.
	Stats ProcessingStats
}

// ProcessingStats collects the per-file counters surfaced in logs and the
// batch summary.
type ProcessingStats struct {
	// RowsRead is the number of raw sheet rows read, header included.
	RowsRead int

	// RecordsExtracted is the number of well-formed LevelRecords.
	RecordsExtracted int

	// MaxLevel is the deepest level present in the input.
	MaxLevel int

	// RootCount is the number of top-level groups built.
	RootCount int

	// RowsWritten is the number of data rows written to the output,
	// separator rows excluded.
	RowsWritten int

	// Diagnostics aggregates the data-quality counters from extraction
	// and hierarchy building.
	Diagnostics types.Diagnostics

	// ProcessingTime is the wall time spent on this file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter processes one input workbook.
type Converter struct {
	inputPath string
	cfg       *config.Config
	profile   config.Profile
	dryRun    bool
	logger    Logger
}

// New creates a Converter for one input file using the active profile of
// the given configuration.
func New(inputPath string, cfg *config.Config, logger Logger) *Converter {
	return &Converter{
		inputPath: inputPath,
		cfg:       cfg,
		profile:   cfg.ActiveProfile(),
		logger:    logger,
	}
}

// SetDryRun makes Run stop before writing output or archiving input.
func (c *Converter) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

// Run executes the pipeline and never panics on messy data: data-quality
// problems are counted in Stats.Diagnostics, and only I/O failures or
// contract breaches produce an unsuccessful Result.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: c.inputPath}

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Info("processing file", "input", c.inputPath, "profile", c.cfg.Profile)

	// ------------------------------------------------------------------
	// Step 1: read the input workbook.
	// ------------------------------------------------------------------
	rows, err := xlsxreader.ReadRows(c.inputPath, c.profile.SheetName)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.RowsRead = len(rows)

	// ------------------------------------------------------------------
	// Step 2: extract the level records.
	// ------------------------------------------------------------------
	ext := extractor.New(extractor.ColumnLayout{
		LevelColumn:      c.profile.LevelColumn,
		IdentifierColumn: c.profile.IdentifierColumn,
		UnitColumn:       c.profile.UnitColumn,
		QuantityColumn:   c.profile.QuantityColumn,
		HeaderRows:       c.profile.HeaderRows,
	})
	records, extractDiag := ext.ExtractAll(rows)
	result.Stats.RecordsExtracted = len(records)
	result.Stats.MaxLevel = extractor.MaxLevel(records)
	result.Stats.Diagnostics.Merge(extractDiag)

	c.logger.Debug("extraction complete",
		"records", len(records),
		"skipped", extractDiag.SkippedRows,
		"max_level", result.Stats.MaxLevel,
		"distribution", extractor.LevelDistribution(records))

	// ------------------------------------------------------------------
	// Step 3: build the hierarchy forest.
	// ------------------------------------------------------------------
	forest, buildDiag, err := hierarchy.Build(records)
	if err != nil {
		result.Error = fmt.Errorf("hierarchy build failed: %w", err)
		return result
	}
	result.Stats.RootCount = len(forest.Roots)
	result.Stats.Diagnostics.Merge(buildDiag)

	if !buildDiag.Clean() {
		c.logger.Warn("hierarchy degraded on ill-formed level jumps",
			"degraded", buildDiag.DegradedAttachments,
			"orphan_roots", buildDiag.OrphanRoots)
	}

	// ------------------------------------------------------------------
	// Step 4: flatten into row groups.
	// ------------------------------------------------------------------
	groups := hierarchy.FlattenGroups(forest)
	c.logger.Debug("flattened forest", "roots", len(forest.Roots), "groups", len(groups))

	if c.dryRun {
		c.logger.Info("dry run, skipping output", "groups", len(groups))
		result.Success = true
		return result
	}

	// ------------------------------------------------------------------
	// Step 5: write the BOM workbook.
	// ------------------------------------------------------------------
	outputName := utils.GenerateOutputFileName(c.cfg.OutputNameFormat, c.cfg.Profile, c.inputPath)
	outputPath := filepath.Join(c.cfg.OutputDir, outputName)

	writer := bomwriter.New(bomwriter.Options{
		TemplatePath:     c.cfg.TemplateFile,
		OutputPath:       outputPath,
		StartRow:         c.profile.StartRow,
		MaterialColumn:   c.profile.MaterialColumn,
		ItemNumberColumn: c.profile.ItemNumberColumn,
		ComponentColumn:  c.profile.ComponentColumn,
		QuantityColumn:   c.profile.QuantityTarget,
		UnitColumn:       c.profile.UnitTarget,
		SeparatorRows:    c.profile.SeparatorRows,
	})
	written, err := writer.Write(groups)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.Stats.RowsWritten = written
	result.OutputFile = outputPath

	c.logger.Info("wrote output", "output", outputPath, "rows", written)

	// ------------------------------------------------------------------
	// Step 6: archive the input. Archival problems are logged, not fatal.
	// ------------------------------------------------------------------
	if c.cfg.ArchiveOnSuccess {
		fm := utils.NewFileManager(c.cfg.InputDir, c.cfg.OutputDir, c.cfg.InputArchiveDir)
		if archived, err := fm.ArchiveInputFile(c.inputPath); err != nil {
			c.logger.Warn("failed to archive input file", "error", err)
		} else {
			c.logger.Debug("archived input file", "archive", archived)
		}
	}

	result.Success = true
	return result
}
