// Package sim implements the region-finish Monte Carlo engine: a
// deterministic standings-and-tiebreak ranker over a region round-robin plus
// a trial driver that samples remaining-game outcomes and aggregates playoff
// odds. The package performs no I/O; callers hand it an in-memory snapshot
// and receive odds rows back.
package sim

import (
	"context"
	"time"

	"github.com/cmorgan/go-region-odds/internal/model"
)

const (
	// DefaultTrials is used when a request leaves Trials at zero.
	DefaultTrials = 20000

	// PlayoffSpots is the number of region places that advance. The ranker
	// only uses it in renormalization, but the formula stays parameterized.
	PlayoffSpots = 4

	// PDCap bounds per-pair head-to-head point differential in tiebreak
	// step 3.
	PDCap = 12

	// ClinchThreshold and ElimThreshold clamp near-certain playoff odds.
	ClinchThreshold = 0.999
	ElimThreshold   = 0.001

	// Simulated loser scores are uniform over [LoserPointsMin, LoserPointsMax].
	LoserPointsMin = 10
	LoserPointsMax = 30
)

// Request carries one region simulation's inputs.
type Request struct {
	Class  int
	Region int
	Season int

	// Trials is the Monte Carlo sample count; zero means DefaultTrials,
	// negative is invalid.
	Trials int

	// Seed fixes the master RNG seed for reproducible runs. Zero picks a
	// time-derived seed, reported back in Result.Seed.
	Seed uint64

	// Workers caps the simulation worker pool; zero or negative means one
	// worker per available CPU. Results are identical for any worker count.
	Workers int

	Schools []model.School
	Games   []model.Game
}

// Result is a completed (or cancelled-partial) simulation.
type Result struct {
	RunID string
	Seed  uint64

	// Trials is the number of trials actually completed; it equals the
	// requested count unless the run was cancelled.
	Trials    int
	Cancelled bool

	// Rows are ordered by region asc, final playoff odds desc, school asc.
	Rows []model.OddsRow
}

// Run executes the Monte Carlo for one region. On cooperative cancellation it
// returns the partial Result computed so far together with a Cancelled error;
// every other error fails the run before trials begin.
func Run(ctx context.Context, req Request) (*Result, error) {
	if req.Trials < 0 {
		return nil, errf(ErrInvalidInput, "trials must be >= 1, got %d", req.Trials)
	}
	trials := req.Trials
	if trials == 0 {
		trials = DefaultTrials
	}

	fx, err := buildFixtures(req)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return runTrials(ctx, fx, trials, seed, req.Workers)
}
