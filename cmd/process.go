// =============================================================================
// BOM Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command for converting
// level-report workbooks into BOM template rows.
//
// COMMAND USAGE:
//   bomconv process [flags]
//
// FLAGS:
//   --dry-run   : Run the pipeline without writing output files
//   --single    : Process only a single file (specify with --file)
//   --file      : Path to a specific workbook (used with --single)
//   --profile   : Layout profile to use (overrides the configured one)
//
// PROCESSING PIPELINE:
//   1. Load the configuration
//   2. Discover .xlsx workbooks in the input directory
//   3. For each file (concurrently): read, extract, build, flatten, write
//   4. Archive processed inputs
//   5. Write the batch summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gkovacs78/bom-converter/internal/config"
	"github.com/gkovacs78/bom-converter/internal/converter"
	"github.com/gkovacs78/bom-converter/pkg/utils"
)

// dryRun runs the pipeline without writing output files.
var dryRun bool

// singleFile restricts processing to one file.
var singleFile bool

// filePath is the workbook to process when singleFile is set.
var filePath string

// profileFlag overrides the configured layout profile.
var profileFlag string

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert level-report workbooks into BOM rows",
	Long: `The process command scans the input directory for Excel workbooks,
reconstructs each report's hierarchy and writes the flattened BOM rows into a
copy of the configured template.

Files are processed concurrently and independently: one malformed workbook
never stops the rest of the batch. Malformed rows and ill-formed level jumps
inside a workbook are counted and reported, not treated as errors.

On success the input workbook is moved to the input archive and a summary log
is written to the output directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)

	processCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific workbook to process (used with --single)",
	)

	processCmd.Flags().StringVar(
		&profileFlag,
		"profile",
		"",
		"Layout profile to use (overrides the configured profile)",
	)
}

// runProcess orchestrates the batch conversion.
func runProcess() error {
	startTime := time.Now()

	// ------------------------------------------------------------------
	// Step 1: load configuration.
	// ------------------------------------------------------------------
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if profileFlag != "" {
		cfg.Profile = profileFlag
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logger := converter.NewLogger(cfg.LogLevel)

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// ------------------------------------------------------------------
	// Step 2: discover input files.
	// ------------------------------------------------------------------
	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles(".xlsx")
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No workbooks found in the input directory.")
		return nil
	}
	logger.Info("starting batch", "files", len(inputFiles), "profile", cfg.Profile)

	// ------------------------------------------------------------------
	// Step 3: process files concurrently. A semaphore caps the fan-out at
	// the configured concurrency.
	// ------------------------------------------------------------------
	var wg sync.WaitGroup
	results := make(chan converter.Result, len(inputFiles))
	sem := make(chan struct{}, cfg.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)
		go func(inputPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			conv := converter.New(inputPath, cfg, logger)
			conv.SetDryRun(dryRun)
			results <- conv.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// ------------------------------------------------------------------
	// Step 4: collect results.
	// ------------------------------------------------------------------
	summary := utils.ProcessingSummary{
		RunID:      uuid.New().String(),
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for result := range results {
		file := utils.FileSummary{
			InputFile:           filepath.Base(result.FilePath),
			OutputFile:          result.OutputFile,
			Success:             result.Success,
			RecordsExtracted:    result.Stats.RecordsExtracted,
			RowsWritten:         result.Stats.RowsWritten,
			SkippedRows:         result.Stats.Diagnostics.SkippedRows,
			DegradedAttachments: result.Stats.Diagnostics.DegradedAttachments,
			OrphanRoots:         result.Stats.Diagnostics.OrphanRoots,
		}
		if result.Success {
			summary.SuccessCount++
			fmt.Printf("  ok %s -> %s\n", file.InputFile, result.OutputFile)
		} else {
			summary.ErrorCount++
			file.Error = result.Error.Error()
			fmt.Printf("  FAILED %s: %v\n", file.InputFile, result.Error)
		}
		summary.Files = append(summary.Files, file)
	}
	summary.Duration = time.Since(startTime)

	// ------------------------------------------------------------------
	// Step 5: print and persist the summary.
	// ------------------------------------------------------------------
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:  %d\n", summary.TotalFiles)
	fmt.Printf("Successful:   %d\n", summary.SuccessCount)
	fmt.Printf("Errors:       %d\n", summary.ErrorCount)
	fmt.Printf("Time elapsed: %s\n", summary.Duration)

	if !dryRun {
		if logPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
			logger.Warn("failed to write summary log", "error", err)
		} else {
			logger.Debug("wrote summary log", "path", logPath)
		}
	}

	return nil
}
