package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cmorgan/go-region-odds/internal/model"
	"github.com/cmorgan/go-region-odds/internal/report"
	"github.com/cmorgan/go-region-odds/internal/sim"
	"github.com/cmorgan/go-region-odds/internal/storage"
)

var (
	simClass   int
	simRegion  int
	simSeason  int
	simTrials  int
	simSeed    uint64
	simWorkers int
	simStore   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a region's remaining games and compute playoff odds",
	Long: `Run the Monte Carlo over a region's remaining games. Interrupting the
run (Ctrl-C) stops between trials and reports partial odds from the trials
completed so far.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simClass, "class", 0, "classification (e.g. 4 for 4A)")
	simulateCmd.Flags().IntVar(&simRegion, "region", 0, "region number")
	simulateCmd.Flags().IntVar(&simSeason, "season", 0, "season year")
	simulateCmd.Flags().IntVar(&simTrials, "trials", 0, "Monte Carlo trials (default from config)")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "RNG seed for reproducible runs (0 = pick one)")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "simulation workers (0 = all CPUs)")
	simulateCmd.Flags().BoolVar(&simStore, "store", false, "persist odds to the region_standings table")
	simulateCmd.MarkFlagRequired("class")
	simulateCmd.MarkFlagRequired("region")
	simulateCmd.MarkFlagRequired("season")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	key := model.RegionKey{Class: simClass, Region: simRegion, Season: simSeason}
	schools, err := db.SchoolsForRegion(key)
	if err != nil {
		return fmt.Errorf("load schools: %w", err)
	}
	names := make([]string, len(schools))
	for i, s := range schools {
		names[i] = s.School
	}
	games, err := db.GamesForSchools(simSeason, names)
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	trials := simTrials
	if trials == 0 {
		trials = cfg.Trials
	}
	workers := simWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sim.Run(ctx, sim.Request{
		Class:   simClass,
		Region:  simRegion,
		Season:  simSeason,
		Trials:  trials,
		Seed:    simSeed,
		Workers: workers,
		Schools: schools,
		Games:   games,
	})
	if err != nil {
		if sim.KindOf(err) != sim.ErrCancelled {
			return fmt.Errorf("simulate: %w", err)
		}
		log.WithField("trials", res.Trials).Warn("run cancelled, reporting partial odds")
	}

	log.WithFields(logrus.Fields{
		"run_id": res.RunID,
		"seed":   res.Seed,
		"trials": res.Trials,
	}).Info("simulation complete")

	if len(res.Rows) == 0 {
		fmt.Fprintln(os.Stdout, "No trials completed; nothing to report.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nRegion %d-%dA, season %d (%d trials, seed %d)\n\n",
		simRegion, simClass, simSeason, res.Trials, res.Seed)
	report.PrintOddsTable(os.Stdout, res.Rows)

	if simStore {
		overall, region := model.TallyRecords(games)
		standings := make([]model.StandingsRow, len(res.Rows))
		for i, r := range res.Rows {
			rec, rrec := overall[r.School], region[r.School]
			standings[i] = model.StandingsRow{
				OddsRow:      r,
				Wins:         rec.Wins,
				Losses:       rec.Losses,
				Ties:         rec.Ties,
				RegionWins:   rrec.Wins,
				RegionLosses: rrec.Losses,
				RegionTies:   rrec.Ties,
				RunID:        res.RunID,
				Seed:         res.Seed,
				Trials:       res.Trials,
			}
		}
		if err := db.UpsertStandings(standings); err != nil {
			return fmt.Errorf("store standings: %w", err)
		}
		log.WithField("rows", len(standings)).Info("standings stored")
	}
	return nil
}
