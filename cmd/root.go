package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"media-insight-dashboard/config"
)

var (
	cfg         *config.Config
	datasetPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "mediadash",
	Short: "Media intelligence dashboard with LLM insights",
	Long: `mediadash loads a dataset of media mentions, filters it by date range and platform,
aggregates it into five views and asks a completion service for three short insights per view.

Run it as an HTTP API (serve), print a one-off report in the terminal (report),
or copy a dataset file into Postgres or Elasticsearch (import).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if datasetPath != "" {
			cfg.Dataset.FilePath = datasetPath
			cfg.Dataset.Source = "file"
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		setupLogger(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "dataset file (csv, tsv or xlsx); overrides DATASET_PATH and forces DATASET_SOURCE=file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
