// Package cli wires the watermap commands together. Each command lives
// in its own file and registers itself on the root command from init.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/openhydro/watermap-cli/internal/config"
	"github.com/openhydro/watermap-cli/internal/logger"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// version is overridden at build time via -ldflags.
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "watermap",
	Short: "Map surface water classes for a watershed",
	Long: `watermap runs a two-stage surface water mapping workflow.

The extraction stage queries Earth Engine for a USGS watershed boundary
and the JRC Global Surface Water classification, clips the raster to the
watershed and submits both as Drive export jobs. The analysis stage
reads the downloaded raster, tabulates pixel counts per water class,
converts them to areas and renders a class map and an area chart.

Typical flow:
  watermap init       write a default configuration
  watermap extract    submit the two export jobs
  watermap status     follow the jobs until they finish
  watermap fetch      download the finished exports from Drive
  watermap analyze    tabulate and render the raster`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logger.Init(verbose)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file (default ~/.watermap/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configPath resolves the config file location from the --config flag or
// the default.
func configPath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the configuration file, with a hint towards init when
// it does not exist yet.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no config at %s, run \"watermap init\" first", path)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigOrDefault is loadConfig for commands that work without a
// config file, falling back to the built-in defaults.
func loadConfigOrDefault() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
