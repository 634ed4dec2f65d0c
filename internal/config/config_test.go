package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileRunsOnDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "template", cfg.Profile)
	assert.Equal(t, "BOM_{profile}_{timestamp}.xlsx", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.True(t, cfg.ArchiveOnSuccess)

	profile := cfg.ActiveProfile()
	assert.Equal(t, 9, profile.StartRow)
	assert.False(t, profile.SeparatorRows)
	assert.Equal(t, 0, profile.LevelColumn)
	assert.Equal(t, 1, profile.IdentifierColumn)
	assert.Equal(t, 3, profile.UnitColumn)
	assert.Equal(t, 4, profile.QuantityColumn)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input_dir: /data/in
profile: plain
max_concurrency: 2
profiles:
  narrow:
    level_column: 0
    identifier_column: 2
    unit_column: 3
    quantity_column: 4
    header_rows: 2
    start_row: 2
    material_column: 1
    item_number_column: 2
    component_column: 3
    quantity_target_column: 4
    unit_target_column: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "plain", cfg.Profile)
	assert.Equal(t, 2, cfg.MaxConcurrency)

	// The plain built-in profile stays available alongside the custom one.
	assert.True(t, cfg.ActiveProfile().SeparatorRows)
	assert.Equal(t, 2, cfg.ActiveProfile().StartRow)
	narrow, ok := cfg.Profiles["narrow"]
	require.True(t, ok)
	assert.Equal(t, 2, narrow.HeaderRows)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BOMCONV_INPUT_DIR", "/env/in")
	t.Setenv("BOMCONV_PROFILE", "plain")
	t.Setenv("BOMCONV_MAX_CONCURRENCY", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/env/in", cfg.InputDir)
	assert.Equal(t, "plain", cfg.Profile)
	assert.Equal(t, 8, cfg.MaxConcurrency)
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		mergeBuiltinProfiles(cfg)
		return cfg
	}

	cfg := base()
	cfg.Profile = "nope"
	require.Error(t, Validate(cfg))

	cfg = base()
	cfg.MaxConcurrency = 0
	require.Error(t, Validate(cfg))

	cfg = base()
	broken := cfg.Profiles["template"]
	broken.StartRow = 0
	cfg.Profiles["template"] = broken
	require.Error(t, Validate(cfg))

	cfg = base()
	broken = cfg.Profiles["plain"]
	broken.MaterialColumn = 0
	cfg.Profiles["plain"] = broken
	require.Error(t, Validate(cfg))
}

func TestBuiltinProfiles(t *testing.T) {
	profiles := BuiltinProfiles()

	template, ok := profiles["template"]
	require.True(t, ok)
	assert.Equal(t, 9, template.StartRow)
	assert.False(t, template.SeparatorRows)

	plain, ok := profiles["plain"]
	require.True(t, ok)
	assert.Equal(t, 2, plain.StartRow)
	assert.True(t, plain.SeparatorRows)

	// Both share the standard source and target columns.
	assert.Equal(t, 12, template.ItemNumberColumn)
	assert.Equal(t, 16, plain.UnitTarget)
}
