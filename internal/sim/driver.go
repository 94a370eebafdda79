package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// accumulator holds one worker's per-school counts for slots 1..PlayoffSpots.
// A school co-placed over a g-wide slot range credits 1/g of a trial to each
// covered slot, so every trial contributes exactly min(PlayoffSpots, n) of
// mass in total. Counts are kept as integers scaled by fixtures.slotScale, so merging
// is exact and independent of how trials were split across workers.
type accumulator struct {
	scale  int64
	counts []int64 // n * PlayoffSpots, school-major
	trials int
}

func newAccumulator(n int, scale int64) *accumulator {
	return &accumulator{scale: scale, counts: make([]int64, n*PlayoffSpots)}
}

func (acc *accumulator) credit(r *placeRanker) {
	for s := range r.first {
		first, last := r.first[s], r.last[s]
		share := acc.scale / int64(last-first+1)
		for k := max(first, 1); k <= min(last, PlayoffSpots); k++ {
			acc.counts[s*PlayoffSpots+k-1] += share
		}
	}
	acc.trials++
}

func (acc *accumulator) merge(other *accumulator) {
	for i, c := range other.counts {
		acc.counts[i] += c
	}
	acc.trials += other.trials
}

// runTrials drives the Monte Carlo over a fixed worker pool. Each worker owns
// its own state, ranker, sampler, and accumulator; the per-trial RNG stream
// is derived from the master seed and trial index, so the merged counts are
// identical for any worker count. Cancellation is checked between trials.
func runTrials(ctx context.Context, fx *fixtures, trials int, seed uint64, workers int) (*Result, error) {
	n := fx.n()
	w := workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > trials {
		w = trials
	}

	accs := make([]*accumulator, w)
	var wg sync.WaitGroup
	for wi := 0; wi < w; wi++ {
		accs[wi] = newAccumulator(n, fx.slotScale)
		wg.Add(1)
		go func(wi int) {
			defer wg.Done()
			st := newSimState(n)
			ranker := newPlaceRanker(fx)
			sampler := newScoreSampler(seed)
			acc := accs[wi]
			for t := wi; t < trials; t += w {
				select {
				case <-ctx.Done():
					return
				default:
				}
				st.reset(fx)
				sampler.reseed(trialSeed(seed, t))
				for _, rp := range fx.remaining {
					aWins, winnerPts, loserPts := sampler.sample()
					st.applySample(rp, aWins, winnerPts, loserPts)
				}
				ranker.assign(st)
				acc.credit(ranker)
			}
		}(wi)
	}
	wg.Wait()

	merged := accs[0]
	for _, acc := range accs[1:] {
		merged.merge(acc)
	}

	res := &Result{
		RunID:     uuid.New().String(),
		Seed:      seed,
		Trials:    merged.trials,
		Cancelled: ctx.Err() != nil,
	}
	if merged.trials > 0 {
		res.Rows = finalize(fx, merged.counts, merged.trials)
	}
	if res.Cancelled {
		return res, errf(ErrCancelled, "cancelled after %d of %d trials", merged.trials, trials)
	}
	return res, nil
}
