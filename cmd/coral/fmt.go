package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coral/internal/diagfmt"
	"coral/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Python and xonsh source files",
	Long: `Fmt rewrites .py, .pyi and .xsh files in place. Directories are searched
recursively; "-" formats standard input to standard output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change and leave them untouched")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff for every changed file instead of rewriting it")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("safe", false, "re-parse every result and refuse output that is not stable")
	fmtCmd.Flags().Int("line-width", 0, "line width budget (default from config, else 88)")
	fmtCmd.Flags().Int("jobs", 0, "max files formatted in parallel (0=auto)")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	fmtCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type fmtFlags struct {
	check, diff, stdout, safe bool
	quiet, timings            bool
	output                    string
	ui                        uiMode
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var (
		f   fmtFlags
		err error
	)
	flags := cmd.Flags()
	for name, dst := range map[string]*bool{
		"check":   &f.check,
		"diff":    &f.diff,
		"stdout":  &f.stdout,
		"safe":    &f.safe,
		"quiet":   &f.quiet,
		"timings": &f.timings,
	} {
		if *dst, err = flags.GetBool(name); err != nil {
			return f, err
		}
	}
	if f.output, err = flags.GetString("format"); err != nil {
		return f, err
	}
	ui, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(ui); err != nil {
		return f, err
	}

	switch f.output {
	case "text", "json":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.output)
	}
	if f.stdout && f.check {
		return f, fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if f.stdout && f.output != "text" {
		return f, fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg, err = applyFlags(cmd, cfg); err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Path))
	}

	opts := driver.FormatOptions{
		Check:   flags.check || flags.diff,
		Stdout:  flags.stdout,
		Diff:    flags.diff,
		Safe:    flags.safe,
		Timings: flags.timings,
		Jobs:    cfg.Jobs,
		Options: formatOptions(cfg),
		Exclude: cfg.Excluded,
		Logger:  logger,
	}
	if cfg.Cache {
		cache, cacheErr := driver.OpenDiskCache("coral")
		if cacheErr != nil {
			logger.Warn("result cache disabled", zap.Error(cacheErr))
		} else {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if stdinOnly(args) {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("fmt: reading stdin: %w", readErr)
		}
		opts.Stdout = !opts.Check
		results = []driver.FormatResult{driver.FormatSource("-", data, opts)}
	} else {
		for _, arg := range args {
			if arg == "-" {
				return fmt.Errorf("fmt: \"-\" cannot be combined with other paths")
			}
		}
		if flags.output == "text" && !flags.stdout && !flags.quiet && shouldUseTUI(flags.ui) {
			results, err = runFormatWithUI(cmd.Context(), "coral fmt", args, opts)
		} else {
			results, err = driver.FormatPaths(cmd.Context(), args, opts)
		}
		if err != nil {
			return err
		}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	sum := summarize(results)
	switch flags.output {
	case "json":
		if err := renderFmtJSON(out, results, flags.check); err != nil {
			return err
		}
	default:
		renderFmtText(out, errOut, results, flags, useColor(cmd, os.Stderr))
		if !flags.quiet && !opts.Stdout {
			fmt.Fprintln(errOut, sum.String(opts.Check))
		}
	}
	if flags.timings {
		fmt.Fprint(errOut, driver.MergeTimings(results).String())
	}

	if sum.failed > 0 || (flags.check && sum.changed > 0) {
		return errSilent
	}
	return nil
}

func stdinOnly(args []string) bool {
	return len(args) == 1 && args[0] == "-"
}

type fmtSummary struct {
	changed, unchanged, failed int
}

func summarize(results []driver.FormatResult) fmtSummary {
	var s fmtSummary
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.failed++
		case res.Changed:
			s.changed++
		default:
			s.unchanged++
		}
	}
	return s
}

func (s fmtSummary) String(check bool) string {
	verb := "reformatted"
	if check {
		verb = "would be reformatted"
	}
	parts := []string{fmt.Sprintf("%s %s", plural(s.changed, "file"), verb)}
	if s.unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%s left unchanged", plural(s.unchanged, "file")))
	}
	if s.failed > 0 {
		parts = append(parts, fmt.Sprintf("%s failed", plural(s.failed, "file")))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, flags fmtFlags, color bool) {
	for _, res := range results {
		if res.Err != nil {
			reportFormatError(errOut, res, color)
			continue
		}
		if res.Diff != "" {
			fmt.Fprint(out, res.Diff)
		}
		preview := flags.check || flags.diff
		switch {
		case res.Formatted != nil && !preview && (flags.stdout || res.Path == "-"):
			_, _ = out.Write(res.Formatted)
		case !res.Changed || flags.quiet:
		case preview:
			fmt.Fprintf(errOut, "would reformat %s\n", res.Path)
		default:
			fmt.Fprintf(errOut, "reformatted %s\n", res.Path)
		}
	}
}

// reportFormatError prints a positioned diagnostic when the error has one.
func reportFormatError(w io.Writer, res driver.FormatResult, color bool) {
	if res.Diagnostics == nil || res.Files == nil {
		fmt.Fprintf(w, "fmt: %s: %v\n", res.Path, res.Err)
		return
	}
	diagfmt.Pretty(w, res.Diagnostics, res.Files, diagfmt.PrettyOpts{
		Color:   color,
		Context: 1,
	})
}

type fmtJSONResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

type fmtJSONOutput struct {
	Check   bool            `json:"check"`
	Results []fmtJSONResult `json:"results"`
	Changed int             `json:"changed"`
	Failed  int             `json:"failed"`
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	sum := summarize(results)
	payload := fmtJSONOutput{
		Check:   check,
		Results: make([]fmtJSONResult, 0, len(results)),
		Changed: sum.changed,
		Failed:  sum.failed,
	}
	for _, res := range results {
		jr := fmtJSONResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Diff: res.Diff}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Results = append(payload.Results, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
