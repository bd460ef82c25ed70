package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"coral/internal/version"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "coral",
	Short: "Python and xonsh source formatter",
	Long:  `Coral rewrites Python and xonsh files into one consistent layout without changing what they mean`,
	// main prints the error once
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		quiet, err := cmd.Flags().GetBool("quiet")
		if err != nil {
			return err
		}
		logger, err = newLogger(verbose, quiet)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return startProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiling()
		_ = logger.Sync()
	},
}

// newLogger builds the structured stderr logger. Only warnings pass by
// default so that formatting output stays readable.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	switch {
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case quiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	config.Sampling = nil
	return config.Build()
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Bool("verbose", false, "log debug details to stderr")
	rootCmd.PersistentFlags().String("config", "", "config file (default: nearest coral.toml or pyproject.toml)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("trace-file", "", "write a runtime execution trace to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRun is skipped when RunE fails
		stopProfiling()
		if !isSilent(err) {
			fmt.Fprintln(os.Stderr, "coral:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
