// Package cli defines the mtnir command tree: the one-shot prediction paths
// (--smiles / --csv) on the root command, and the serve subcommand for the
// HTTP API.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/internal/infrastructure/cache"
	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	"github.com/jdsanc/mt-nir/internal/infrastructure/metrics"
	"github.com/jdsanc/mt-nir/internal/predictor"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global and prediction flags.
type rootOptions struct {
	ConfigPath string
	LogLevel   string

	SMILES     string
	CSVPath    string
	ModelsPath string
}

// NewRootCommand creates the root cobra command with flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "mtnir",
		Short:   "Predict photophysical properties of molecules with a trained chemprop ensemble",
		Long:    "mtnir predicts max absorption wavelength, log extinction coefficient, and\nphotoisomerization quantum yield for molecules given as SMILES strings, by\ndelegating inference to the external chemprop CLI.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: env/defaults)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.ModelsPath, "models_path", "", "path to the trained model checkpoint (default: "+config.DefaultModelsPath+")")

	f := cmd.Flags()
	f.StringVar(&opts.SMILES, "smiles", "", "SMILES string to predict properties for")
	f.StringVar(&opts.CSVPath, "csv", "", "path to CSV file containing SMILES strings")

	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// Execute is the entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Initialization chain
// ─────────────────────────────────────────────────────────────────────────────

// loadConfig resolves configuration with priority flags > env > file >
// defaults.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if opts.ModelsPath != "" {
		cfg.Chemprop.ModelsPath = opts.ModelsPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg, nil
}

// initLogger creates a logger configured for CLI usage.  Output goes to
// stderr so prediction results on stdout stay clean.
func initLogger(cfg *config.Config) (logging.Logger, error) {
	logCfg := cfg.Log
	logCfg.OutputPaths = []string{"stderr"}
	return logging.NewLogger(logCfg)
}

// buildPredictor wires the predictor with the optional cache and metrics.
func buildPredictor(cmd *cobra.Command, cfg *config.Config, logger logging.Logger, m *metrics.Metrics) (predictor.Predictor, error) {
	opts := []predictor.Option{}
	if m != nil {
		opts = append(opts, predictor.WithMetrics(m))
	}

	if cfg.Cache.Enabled {
		pc, err := cache.NewRedis(cmd.Context(), cfg.Cache, logger)
		if err != nil {
			// The cache is an accelerator, not a dependency.
			logger.Warn("prediction cache unavailable, continuing without it", logging.Err(err))
		} else {
			opts = append(opts, predictor.WithCache(pc))
		}
	}

	return predictor.NewChempropPredictor(cfg.Chemprop, logger, opts...)
}
