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
	seedClass  int
	seedRegion int
	seedSeason int
	seedOut    string
)

var seedingCmd = &cobra.Command{
	Use:   "seeding",
	Short: "Render the seeding odds text report for a region",
	Long: `Render the per-seed probability report from stored standings, in the
format published on the league standings page.`,
	Args: cobra.NoArgs,
	RunE: runSeeding,
}

func init() {
	seedingCmd.Flags().IntVar(&seedClass, "class", 0, "classification")
	seedingCmd.Flags().IntVar(&seedRegion, "region", 0, "region number")
	seedingCmd.Flags().IntVar(&seedSeason, "season", 0, "season year")
	seedingCmd.Flags().StringVar(&seedOut, "out", "", "write the report to a file instead of stdout")
	seedingCmd.MarkFlagRequired("class")
	seedingCmd.MarkFlagRequired("region")
	seedingCmd.MarkFlagRequired("season")
}

func runSeeding(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	key := model.RegionKey{Class: seedClass, Region: seedRegion, Season: seedSeason}
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

	out := os.Stdout
	if seedOut != "" {
		f, err := os.Create(seedOut)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteSeeding(out, key, rows); err != nil {
		return fmt.Errorf("write seeding report: %w", err)
	}
	if seedOut != "" {
		log.WithField("path", seedOut).Info("seeding report written")
	}
	return nil
}
