package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/dataset"
	"github.com/katalvlaran/digipath/internal/config"
	"github.com/katalvlaran/digipath/internal/logging"
)

// app is the state shared by every subcommand: resolved configuration and
// the logger built from it.
type app struct {
	configPath string
	datasetDir string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "digipath",
		Short: "digipath finds digivolution routes",
		Long: `digipath searches the digivolution graph for the cheapest route between two
digimon, picking up required moves on the way and farming ABI where an
evolution demands more than the route has accumulated.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.datasetDir, "data", "", "dataset directory (overrides dataset_dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "text or json")

	root.AddCommand(
		newFindCmd(a),
		newReachCmd(a),
		newABICmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves configuration (defaults, file, flags) and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.datasetDir != "" {
		cfg.DatasetDir = a.datasetDir
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	return nil
}

// loadDataset reads the configured dataset directory.
func (a *app) loadDataset() (*dataset.Dataset, error) {
	ds, err := dataset.Load(a.cfg.DatasetDir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %w", a.cfg.DatasetDir, err)
	}
	a.logger.Debug("dataset loaded",
		"dir", a.cfg.DatasetDir,
		"digimon", ds.Graph.DigimonCount(),
		"evolutions", ds.Graph.EvolutionCount(),
	)

	return ds, nil
}
