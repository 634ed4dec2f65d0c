// =============================================================================
// BOM Converter - File Manager Utility
// =============================================================================
//
// File management around the conversion pipeline:
//   - Input discovery (level-report workbooks in the input directory)
//   - Archival of processed inputs
//   - Output file naming ({uuid}/{timestamp}/{profile}/{stem} placeholders)
//   - Summary log generation
//
// Failed inputs stay where they are; only successfully processed files are
// archived.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles directory and file operations for the converter.
type FileManager struct {
	// InputDir is scanned for workbooks to process.
	InputDir string

	// OutputDir receives filled BOM workbooks and summary logs.
	OutputDir string

	// InputArchiveDir receives successfully processed inputs.
	InputArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates any missing managed directory.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DiscoverInputFiles returns the workbooks in the input directory with the
// given extension (e.g. ".xlsx"), sorted by name. Excel lock files ("~$...")
// are skipped.
func (fm *FileManager) DiscoverInputFiles(extension string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), extension) {
			files = append(files, filepath.Join(fm.InputDir, name))
		}
	}
	return files, nil
}

// ArchiveInputFile moves a processed input into the archive directory and
// returns the archived path. A name collision gets a timestamp suffix
// instead of overwriting the earlier archive entry.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	fileName := filepath.Base(filePath)
	archivePath := filepath.Join(fm.InputArchiveDir, fileName)

	if FileExists(archivePath) {
		ext := filepath.Ext(fileName)
		stem := strings.TrimSuffix(fileName, ext)
		stamp := time.Now().Format("20060102_150405")
		archivePath = filepath.Join(fm.InputArchiveDir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}
	return archivePath, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName expands the naming format. Supported placeholders:
// {uuid}, {timestamp}, {profile}, {stem}. A missing .xlsx extension is
// appended.
func GenerateOutputFileName(format, profile, inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{profile}", profile)
	name = strings.ReplaceAll(name, "{stem}", stem)

	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}

// =============================================================================
// SUMMARY LOG
// =============================================================================

// ProcessingSummary describes one batch run for the summary log.
type ProcessingSummary struct {
	// RunID identifies the batch run.
	RunID string

	// StartTime and Duration frame the run.
	StartTime time.Time
	Duration  time.Duration

	// TotalFiles, SuccessCount and ErrorCount are the batch totals.
	TotalFiles   int
	SuccessCount int
	ErrorCount   int

	// Files holds the per-file outcomes in processing order.
	Files []FileSummary
}

// FileSummary is one file's outcome inside a ProcessingSummary.
type FileSummary struct {
	InputFile  string
	OutputFile string
	Success    bool
	Error      string

	RecordsExtracted    int
	RowsWritten         int
	SkippedRows         int
	DegradedAttachments int
	OrphanRoots         int
}

// WriteSummaryLog writes the batch summary into the output directory and
// returns the log path.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	logPath := filepath.Join(outputDir,
		fmt.Sprintf("summary_%s.log", summary.StartTime.Format("20060102_150405")))

	var b strings.Builder
	fmt.Fprintf(&b, "BOM Converter - Processing Summary\n")
	fmt.Fprintf(&b, "Run ID:      %s\n", summary.RunID)
	fmt.Fprintf(&b, "Started:     %s\n", summary.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration:    %s\n", summary.Duration)
	fmt.Fprintf(&b, "Total files: %d (ok: %d, failed: %d)\n",
		summary.TotalFiles, summary.SuccessCount, summary.ErrorCount)
	b.WriteString("\n")

	for _, f := range summary.Files {
		if f.Success {
			fmt.Fprintf(&b, "OK      %s -> %s\n", f.InputFile, f.OutputFile)
			fmt.Fprintf(&b, "        records=%d rows=%d skipped=%d degraded=%d orphans=%d\n",
				f.RecordsExtracted, f.RowsWritten, f.SkippedRows, f.DegradedAttachments, f.OrphanRoots)
		} else {
			fmt.Fprintf(&b, "FAILED  %s: %s\n", f.InputFile, f.Error)
		}
	}

	if err := os.WriteFile(logPath, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary log: %w", err)
	}
	return logPath, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
