// Package cli provides the hurdat2 commands using Cobra.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "hurdat2",
	Short: "Convert NOAA HURDAT2 best-track files into analysis-ready form",
	Long: `hurdat2 converts the NOAA best-track storm history datasets (Atlantic,
Northeast Pacific) into a normalized SQLite database and/or a flat CSV
export: combined ISO-8601 timestamps, signed decimal coordinates, and
explicit nulls in place of the -99/-999 sentinels.

Examples:
  hurdat2 convert --atlantic hurdat2-atl.txt --out hurricane
  hurdat2 convert --atlantic atl.txt --pacific nepac.txt --format both --out hurricane
  hurdat2 convert --atlantic atl.txt --basin atlantic --format csv --where 'wind >= 96' --out majors
  hurdat2 validate --db hurricane.db`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
}
