package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yanaldoshi/codi/internal/interp"
	"github.com/yanaldoshi/codi/internal/session"
	"github.com/yanaldoshi/codi/internal/transcript"
)

var (
	evalInterpreter string
	evalRaw         bool
	evalPlain       bool
	evalTimeout     time.Duration
	evalConfig      string

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var evalCmd = &cobra.Command{
	Use:   "eval FILE",
	Short: "Evaluate a source file once and print the results",
	Long: `Evaluate runs the file through its interpreter and prints the value each
statement produced next to its source line. Use "-" to read from stdin, in
which case --interpreter is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		source, identity, err := readSource(args[0])
		if err != nil {
			return err
		}
		if evalInterpreter != "" {
			identity = evalInterpreter
		}
		if identity == "" {
			return fmt.Errorf("cannot infer an interpreter for %q; pass --interpreter", args[0])
		}

		d, err := reg.Resolve(identity)
		if err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return err
		}
		if err := d.CheckBinary(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), evalTimeout)
		defer cancel()

		raw, err := session.NewRunner().Run(ctx, d, source)
		if err != nil {
			return err
		}

		normalized := transcript.NewNormalizer().Normalize(raw, transcript.Source{
			Lines:      len(transcript.Lines(source)),
			Prompt:     d.Prompt,
			Preprocess: d.Preprocess,
		})

		var results []string
		if evalRaw {
			results = transcript.Lines(normalized)
		} else {
			results = transcript.Extract(normalized, d.Prompt)
		}

		printResults(cmd.OutOrStdout(), source, results)
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalInterpreter, "interpreter", "i", "", "Interpreter identity (inferred from the file extension if omitted)")
	evalCmd.Flags().BoolVar(&evalRaw, "raw", false, "Show the normalized transcript instead of extracted values")
	evalCmd.Flags().BoolVar(&evalPlain, "plain", false, "Print result lines only, unstyled")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 5*time.Second, "Bounded wait for the interpreter run")
	evalCmd.Flags().StringVar(&evalConfig, "config", "", "Extra interpreter definitions (YAML)")
	rootCmd.AddCommand(evalCmd)
}

// loadRegistry builds the interpreter registry: builtins plus the optional
// user overlay.
func loadRegistry() (*interp.Registry, error) {
	reg := interp.Builtin()
	if evalConfig == "" {
		return reg, nil
	}
	return interp.LoadFile(evalConfig, reg)
}

// readSource reads the file (or stdin for "-") and infers an interpreter
// identity from the file extension.
func readSource(path string) (source, identity string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	identity = strings.TrimPrefix(filepath.Ext(path), ".")
	return string(data), identity, nil
}

// printResults writes source and result lines side by side, vertically
// aligned, or results only with --plain.
func printResults(w io.Writer, source string, results []string) {
	if evalPlain {
		for _, r := range results {
			fmt.Fprintln(w, r)
		}
		return
	}

	srcLines := transcript.Lines(source)
	width := 0
	for _, s := range srcLines {
		if len(s) > width {
			width = len(s)
		}
	}

	for i, s := range srcLines {
		value := ""
		if i < len(results) {
			value = results[i]
		}
		fmt.Fprintf(w, "%s %s %s\n",
			sourceStyle.Render(fmt.Sprintf("%-*s", width, s)),
			gutterStyle.Render("│"),
			valueStyle.Render(value),
		)
	}

	// Raw mode can produce more lines than the source has.
	for i := len(srcLines); i < len(results); i++ {
		fmt.Fprintf(w, "%s %s %s\n",
			strings.Repeat(" ", width),
			gutterStyle.Render("│"),
			valueStyle.Render(results[i]),
		)
	}
}
