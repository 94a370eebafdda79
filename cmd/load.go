package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cmorgan/go-region-odds/internal/loader"
	"github.com/cmorgan/go-region-odds/internal/storage"
)

var loadCmd = &cobra.Command{
	Use:   "load <schools.csv> <games.csv>",
	Short: "Import a season snapshot into the database",
	Long: `Import school and game CSVs exported from the upstream data pipeline.
Re-importing the same snapshot is idempotent.`,
	Args: cobra.ExactArgs(2),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	schoolsPath, gamesPath := args[0], args[1]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	schools, err := loader.ReadSchoolsFile(schoolsPath)
	if err != nil {
		return fmt.Errorf("read schools: %w", err)
	}
	games, err := loader.ReadGamesFile(gamesPath)
	if err != nil {
		return fmt.Errorf("read games: %w", err)
	}

	if err := db.InsertSchools(schools); err != nil {
		return fmt.Errorf("insert schools: %w", err)
	}
	if err := db.InsertGames(games); err != nil {
		return fmt.Errorf("insert games: %w", err)
	}

	log.WithFields(logrus.Fields{
		"schools": len(schools),
		"games":   len(games),
	}).Info("snapshot imported")
	return nil
}
