// =============================================================================
// BOM Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and checks the
// configuration without processing any file.
//
// COMMAND USAGE:
//   bomconv validate
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gkovacs78/bom-converter/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without processing",
	Long: `The validate command loads the configuration file, applies environment
overrides and checks every layout profile. It reports the resolved settings
and exits without touching any workbook.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Println("Configuration OK")
		fmt.Printf("Input dir:      %s\n", cfg.InputDir)
		fmt.Printf("Output dir:     %s\n", cfg.OutputDir)
		fmt.Printf("Template file:  %s\n", cfg.TemplateFile)
		fmt.Printf("Active profile: %s\n", cfg.Profile)

		names := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Profiles:")
		for _, name := range names {
			p := cfg.Profiles[name]
			fmt.Printf("  %-10s start_row=%d separator_rows=%v header_rows=%d\n",
				name, p.StartRow, p.SeparatorRows, p.HeaderRows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
