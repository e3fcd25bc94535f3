package cmd

import (
	"context"
	"fmt"

	"github.com/cognicore/paperiq/internal/logging"
	"github.com/cognicore/paperiq/internal/version"
	"github.com/cognicore/paperiq/pkg/paperiq/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	envFile    string
	verbose    bool
	format     string
)

var RootCmd = &cobra.Command{
	Use:     "paperiq",
	Short:   "Score the writing quality of academic text",
	Version: version.Short(),
	Long: `paperiq measures language quality, coherence and reasoning in a piece
of writing, points at the sentences that pull the score down, and reads
the sentiment of every sentence.

Configuration comes from a YAML file (--config), a .env file (--env-file)
and PAPERIQ_* environment variables, later sources taking precedence.`,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file first")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
}

// session bundles what every subcommand needs.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	comp   *config.Components
}

func (r *session) Close() {
	if err := r.comp.Close(); err != nil {
		r.logger.Warn("close archive", zap.Error(err))
	}
	_ = r.logger.Sync()
}

func setup(ctx context.Context) (*session, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loader := &config.Loader{Config: cfg}
	comp, err := loader.Load(ctx)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	logger.Debug("components ready",
		zap.String("sentiment_provider", cfg.Sentiment.Provider),
		zap.Bool("archive", comp.Archive != nil),
	)
	return &session{cfg: cfg, logger: logger, comp: comp}, nil
}
