package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/diagfmt"
	"coral/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Print the syntax tree of a source file",
	Long:  `Parse reads one source file and prints an outline of its syntax tree, with diagnostics on stderr`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|short)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				Context:   2,
				ShowNotes: true,
			})
		}
		if err := ast.Dump(out, result.Builder, result.FileID); err != nil {
			return err
		}
	case "json":
		// only the diagnostics have a stable JSON form
		if err := diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	case "short":
		items := result.Bag.Items()
		diags := make([]*diag.Diagnostic, len(items))
		for i := range items {
			diags[i] = &items[i]
		}
		if text := diag.FormatGoldenDiagnostics(diags, result.FileSet, true); text != "" {
			fmt.Fprintln(out, text)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if result.Bag.HasErrors() {
		cmd.SilenceErrors = true
		return errSilent
	}
	return nil
}
