package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	nameStyle = lipgloss.NewStyle().
			Bold(true)
)

var interpretersCmd = &cobra.Command{
	Use:   "interpreters",
	Short: "List registered interpreters",
	Long: `List the interpreter registry (builtins plus any --config overlay) and
whether each binary resolves on this host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, name := range reg.Names() {
			d, err := reg.Resolve(name)
			if err != nil {
				continue
			}
			status := okStyle.Render("ok")
			if err := d.CheckBinary(); err != nil {
				status = missingStyle.Render("missing")
			}
			fmt.Fprintf(w, "%-14s %-10s %-10s %s\n",
				nameStyle.Render(name), d.Bin, status, d.Prompt.String())
		}
		return nil
	},
}

func init() {
	interpretersCmd.Flags().StringVar(&evalConfig, "config", "", "Extra interpreter definitions (YAML)")
	rootCmd.AddCommand(interpretersCmd)
}
