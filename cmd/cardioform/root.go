package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/internal/config"
	"github.com/goliatone/go-cardioform/internal/logging"
)

type rootOptions struct {
	configPath string
	envFiles   []string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "cardioform",
		Short: "Heart disease risk form backed by a prediction API",
		Long: `cardioform collects seven clinical features, sends them to a heart disease
prediction API and shows the predicted probability and risk level.

It serves the form as a web page, runs it interactively in the terminal,
or submits one set of values given as flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, ".env files to load before reading the environment")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newServeCmd(opts),
		newPromptCmd(opts),
		newPredictCmd(opts),
		newRenderCmd(opts),
		newLintCmd(),
	)
	return cmd
}

func (o *rootOptions) load() error {
	if err := config.LoadDotEnv(o.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}
