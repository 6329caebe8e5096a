package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yanaldoshi/codi/internal/pane"
	"github.com/yanaldoshi/codi/internal/tui"
)

var (
	tuiInterpreter string
	tuiRaw         bool
	tuiDebounce    time.Duration
	tuiTimeout     time.Duration
	tuiConfig      string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [FILE]",
	Short: "Open a live evaluation pane",
	Long: `Tui opens a split view: the source on the left, the value each statement
produced on the right. The interpreter re-runs after every pause in editing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		evalConfig = tuiConfig
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		var source, identity string
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			source = string(data)
			identity = strings.TrimPrefix(filepath.Ext(args[0]), ".")
		}
		if tuiInterpreter != "" {
			identity = tuiInterpreter
		}
		if identity == "" {
			return fmt.Errorf("no interpreter identity; pass --interpreter or a file with a known extension")
		}

		cfg := pane.DefaultConfig()
		cfg.Debounce = tuiDebounce
		cfg.Timeout = tuiTimeout

		m, err := tui.New(tui.Options{
			Identity: identity,
			Source:   source,
			Raw:      tuiRaw,
			Registry: reg,
			Config:   cfg,
		})
		if err != nil {
			return err
		}

		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiInterpreter, "interpreter", "i", "", "Interpreter identity (inferred from the file extension if omitted)")
	tuiCmd.Flags().BoolVar(&tuiRaw, "raw", false, "Show the normalized transcript instead of extracted values")
	tuiCmd.Flags().DurationVar(&tuiDebounce, "debounce", 250*time.Millisecond, "Quiescence interval before re-evaluating")
	tuiCmd.Flags().DurationVar(&tuiTimeout, "timeout", 5*time.Second, "Bounded wait for one interpreter run")
	tuiCmd.Flags().StringVar(&tuiConfig, "config", "", "Extra interpreter definitions (YAML)")
	rootCmd.AddCommand(tuiCmd)
}
