package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cmorgan/go-region-odds/internal/config"
	"github.com/cmorgan/go-region-odds/internal/logger"
)

var (
	dbPath   string
	logLevel string

	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "regionodds",
	Short: "Region playoff odds simulator",
	Long: `Simulate the remaining games of a high-school football region
round-robin and compute each school's odds of finishing in a playoff spot.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("db") && cfg.DBPath != "" {
			dbPath = cfg.DBPath
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = cfg.LogLevel
		}
		log = logger.Init(logLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".regionodds", "regionodds.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(seedingCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
