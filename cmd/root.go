package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanaldoshi/codi/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "codi",
	Short: "Live interpreter evaluation panes for source files",
	Long: `Codi feeds a source file to an interactive interpreter through a
pseudo-terminal and shows the value each statement produced, line-aligned
with the source. Evaluate once from the command line or keep a live pane
open that re-runs on idle edits.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("codi %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
