package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coral/internal/prof"
)

var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	var (
		opts prof.Options
		err  error
	)
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return err
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return err
	}
	if opts.Trace, err = flags.GetString("trace-file"); err != nil {
		return err
	}
	if !opts.Enabled() {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

func stopProfiling() {
	if err := profiling.Stop(); err != nil {
		logger.Warn("profiling output incomplete", zap.Error(err))
	}
	profiling = nil
}
