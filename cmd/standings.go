package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmorgan/go-region-odds/internal/model"
	"github.com/cmorgan/go-region-odds/internal/report"
	"github.com/cmorgan/go-region-odds/internal/storage"
)

var (
	standClass  int
	standRegion int
	standSeason int
)

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show stored playoff odds for a region",
	Args:  cobra.NoArgs,
	RunE:  runStandings,
}

func init() {
	standingsCmd.Flags().IntVar(&standClass, "class", 0, "classification")
	standingsCmd.Flags().IntVar(&standRegion, "region", 0, "region number")
	standingsCmd.Flags().IntVar(&standSeason, "season", 0, "season year")
	standingsCmd.MarkFlagRequired("class")
	standingsCmd.MarkFlagRequired("region")
	standingsCmd.MarkFlagRequired("season")
}

func runStandings(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	key := model.RegionKey{Class: standClass, Region: standRegion, Season: standSeason}
	standings, err := db.StandingsForRegion(key)
	if err != nil {
		return fmt.Errorf("load standings: %w", err)
	}
	if len(standings) == 0 {
		fmt.Fprintln(os.Stdout, "No standings stored for that region. Run 'regionodds simulate --store' first.")
		return nil
	}

	rows := make([]model.OddsRow, len(standings))
	for i, s := range standings {
		rows[i] = s.OddsRow
	}
	fmt.Fprintf(os.Stdout, "\nRegion %d-%dA, season %d (%d trials, seed %d)\n\n",
		standRegion, standClass, standSeason, standings[0].Trials, standings[0].Seed)
	report.PrintOddsTable(os.Stdout, rows)
	return nil
}
