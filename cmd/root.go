// =============================================================================
// BOM Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('process', 'validate', 'version') attach to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bomconv)
//   ├── processCmd (bomconv process)
//   ├── validateCmd (bomconv validate)
//   └── versionCmd (bomconv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file, overridable with
// --config.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bomconv",
	Short: "BOM Converter - Flatten level reports into BOM template rows",

	Long: `BOM Converter reads level-tagged article reports from Excel workbooks,
reconstructs the implicit parent/child hierarchy, and writes the flattened
material/component rows into a BOM template workbook.

Each input row carries a level marker (1 = top). The converter rebuilds the
tree from the level sequence alone, then emits one material header per parent
followed by its component lines with item numbers 0010, 0020, ...

Example Usage:
  bomconv process                      # Process all workbooks in the input directory
  bomconv process --single --file x.xlsx
  bomconv process --profile plain      # Fill a bare sheet from row 2
  bomconv validate                     # Check the configuration without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}
