package sim

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulated winning margins and their probabilities. Margins start at a field
// goal, so a sampled game is never a tie.
var (
	marginValues  = [...]int{3, 7, 10, 14}
	marginWeights = []float64{0.4, 0.3, 0.2, 0.1}
)

// scoreSampler draws winners and final scores for remaining pairs. Each
// worker owns one; the source is reseeded per trial so the stream for a trial
// depends only on the master seed and trial index, never on which worker ran
// it.
type scoreSampler struct {
	src     *rand.Rand
	margins distuv.Categorical
}

func newScoreSampler(seed uint64) *scoreSampler {
	src := rand.New(rand.NewSource(seed))
	return &scoreSampler{
		src:     src,
		margins: distuv.NewCategorical(marginWeights, src),
	}
}

func (s *scoreSampler) reseed(seed uint64) {
	s.src.Seed(seed)
}

// sample draws one game outcome: whether the lesser-named school wins, and
// the winner/loser scores. Winner points are loser points plus the margin.
func (s *scoreSampler) sample() (aWins bool, winnerPts, loserPts int) {
	aWins = s.src.Uint64()&1 == 1
	margin := marginValues[int(s.margins.Rand())]
	loserPts = LoserPointsMin + s.src.Intn(LoserPointsMax-LoserPointsMin+1)
	winnerPts = loserPts + margin
	return aWins, winnerPts, loserPts
}

// splitmix64 mixes a seed into a well-distributed 64-bit value; used to
// derive independent per-trial streams from the master seed.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func trialSeed(master uint64, trial int) uint64 {
	return splitmix64(master + (uint64(trial)+1)*0x9E3779B97F4A7C15)
}
