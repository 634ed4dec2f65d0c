// =============================================================================
// BOM Converter - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration:
//   1. Built-in defaults (the standard template and plain layouts)
//   2. The YAML config file
//   3. Environment overrides (prefix BOMCONV, e.g. BOMCONV_INPUT_DIR)
//
// Later sources win. Layout profiles bundle the source column layout with
// the sink layout, so a single --profile flag switches the whole pipeline
// between report formats.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment overrides.
const envPrefix = "bomconv"

// =============================================================================
// MAIN CONFIGURATION
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// InputDir is scanned for level-report workbooks in batch mode.
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`

	// OutputDir receives the filled BOM workbooks and the summary logs.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	// InputArchiveDir receives successfully processed input files.
	InputArchiveDir string `yaml:"input_archive_dir" envconfig:"INPUT_ARCHIVE_DIR"`

	// TemplateFile is the BOM template workbook copied for each output.
	TemplateFile string `yaml:"template_file" envconfig:"TEMPLATE_FILE"`

	// Profile names the layout profile to use. Default: "template".
	Profile string `yaml:"profile" envconfig:"PROFILE"`

	// OutputNameFormat builds output file names. Placeholders: {uuid},
	// {timestamp}, {profile}, {stem} (input file name without extension).
	OutputNameFormat string `yaml:"output_name_format" envconfig:"OUTPUT_NAME_FORMAT"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// MaxConcurrency caps the number of files processed in parallel.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY"`

	// ArchiveOnSuccess moves inputs to InputArchiveDir after processing.
	ArchiveOnSuccess bool `yaml:"archive_on_success" envconfig:"ARCHIVE_ON_SUCCESS"`

	// Profiles maps profile names to layout profiles. The built-in
	// "template" and "plain" profiles are always present; the config file
	// may add or override entries.
	Profiles map[string]Profile `yaml:"profiles" ignored:"true"`
}

// =============================================================================
// LAYOUT PROFILES
// =============================================================================

// Profile bundles the source column layout with the sink layout.
type Profile struct {
	// SheetName selects the input sheet; empty means auto-select.
	SheetName string `yaml:"sheet_name"`

	// Source columns, 0-based (A=0).
	LevelColumn      int `yaml:"level_column"`
	IdentifierColumn int `yaml:"identifier_column"`
	UnitColumn       int `yaml:"unit_column"`
	QuantityColumn   int `yaml:"quantity_column"`

	// HeaderRows is the number of leading input rows to skip.
	HeaderRows int `yaml:"header_rows"`

	// StartRow is the first output data row, 1-based. The template profile
	// starts at 9 to preserve template rows 1-8.
	StartRow int `yaml:"start_row"`

	// Target columns, 1-based (E=5).
	MaterialColumn   int `yaml:"material_column"`
	ItemNumberColumn int `yaml:"item_number_column"`
	ComponentColumn  int `yaml:"component_column"`
	QuantityTarget   int `yaml:"quantity_target_column"`
	UnitTarget       int `yaml:"unit_target_column"`

	// SeparatorRows inserts a blank row between top-level groups.
	SeparatorRows bool `yaml:"separator_rows"`
}

// BuiltinProfiles returns the two standard profiles. "template" fills a
// pre-formatted BOM template from row 9; "plain" fills a bare sheet from
// row 2 with separator rows between groups.
func BuiltinProfiles() map[string]Profile {
	source := Profile{
		LevelColumn:      0,
		IdentifierColumn: 1,
		UnitColumn:       3,
		QuantityColumn:   4,
		HeaderRows:       1,
		MaterialColumn:   5,
		ItemNumberColumn: 12,
		ComponentColumn:  14,
		QuantityTarget:   15,
		UnitTarget:       16,
	}

	template := source
	template.StartRow = 9

	plain := source
	plain.StartRow = 2
	plain.SeparatorRows = true

	return map[string]Profile{
		"template": template,
		"plain":    plain,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, layers environment overrides on top and
// validates the result. A missing config file is not an error: defaults
// plus environment are a complete configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	mergeBuiltinProfiles(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults sets the defaults layered under file and environment.
func applyDefaults(cfg *Config) {
	cfg.InputDir = "./input"
	cfg.OutputDir = "./output"
	cfg.InputArchiveDir = "./input_archive"
	cfg.Profile = "template"
	cfg.OutputNameFormat = "BOM_{profile}_{timestamp}.xlsx"
	cfg.LogLevel = "info"
	cfg.MaxConcurrency = 4
	cfg.ArchiveOnSuccess = true
}

// mergeBuiltinProfiles adds the built-in profiles without clobbering
// same-named entries from the config file.
func mergeBuiltinProfiles(cfg *Config) {
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	for name, p := range BuiltinProfiles() {
		if _, exists := cfg.Profiles[name]; !exists {
			cfg.Profiles[name] = p
		}
	}
}

// Validate checks the configuration for contradictions before any file is
// touched.
func Validate(cfg *Config) error {
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}

	profile, ok := cfg.Profiles[cfg.Profile]
	if !ok {
		return fmt.Errorf("unknown profile %q", cfg.Profile)
	}
	if err := validateProfile(cfg.Profile, profile); err != nil {
		return err
	}

	for name, p := range cfg.Profiles {
		if name == cfg.Profile {
			continue
		}
		if err := validateProfile(name, p); err != nil {
			return err
		}
	}
	return nil
}

func validateProfile(name string, p Profile) error {
	if p.StartRow < 1 {
		return fmt.Errorf("profile %q: start_row must be at least 1, got %d", name, p.StartRow)
	}
	if p.HeaderRows < 0 {
		return fmt.Errorf("profile %q: header_rows must not be negative, got %d", name, p.HeaderRows)
	}
	targets := map[string]int{
		"material_column":        p.MaterialColumn,
		"item_number_column":     p.ItemNumberColumn,
		"component_column":       p.ComponentColumn,
		"quantity_target_column": p.QuantityTarget,
		"unit_target_column":     p.UnitTarget,
	}
	for field, col := range targets {
		if col < 1 {
			return fmt.Errorf("profile %q: %s must be a 1-based column, got %d", name, field, col)
		}
	}
	return nil
}

// ActiveProfile returns the configured profile. Call only after Load or
// Validate succeeded.
func (c *Config) ActiveProfile() Profile {
	return c.Profiles[c.Profile]
}
