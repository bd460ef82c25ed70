package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coral/internal/format"
	"coral/internal/project"
)

// loadConfig reads --config, or discovers the project config from the
// working directory.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Config{}, err
	}
	if path != "" {
		cfg, err := project.Load(path)
		if err != nil {
			return project.Config{}, fmt.Errorf("config: %w", err)
		}
		return cfg, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, err
	}
	cfg, err := project.Discover(wd)
	if err != nil {
		return project.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg project.Config) (project.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("line-width") {
		w, err := flags.GetInt("line-width")
		if err != nil {
			return cfg, err
		}
		if w < 1 {
			return cfg, fmt.Errorf("--line-width must be at least 1, got %d", w)
		}
		cfg.LineWidth = w
	}
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return cfg, err
		}
		cfg.Jobs = jobs
	}
	if flags.Changed("no-cache") {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return cfg, err
		}
		cfg.Cache = !noCache
	}
	return cfg, nil
}

func formatOptions(cfg project.Config) format.Options {
	return format.Options{
		LineWidth:       cfg.LineWidth,
		TrailingNewline: cfg.TrailingNewline,
	}
}
