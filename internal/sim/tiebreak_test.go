package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmpOpt_NullIsLeast(t *testing.T) {
	present := optInt{v: 0, ok: true}
	null := optInt{}
	assert.Equal(t, -1, cmpOpt(present, null), "any value beats no game")
	assert.Equal(t, 1, cmpOpt(null, present))
	assert.Equal(t, 0, cmpOpt(null, null))
	assert.Equal(t, -1, cmpOpt(optInt{v: 2, ok: true}, optInt{v: 1, ok: true}))
}

func TestCmpOptLex_NullDecidesAtFirstDifference(t *testing.T) {
	some := func(v int) optInt { return optInt{v: v, ok: true} }
	null := optInt{}

	// Team X played opponents ranked 1 and 3, team Y ranked 1 and 2:
	// index 1 decides, because a played game beats no game.
	x := []optInt{some(2), null, some(2)}
	y := []optInt{some(2), some(2), null}
	assert.Equal(t, 1, cmpOptLex(x, y), "Y wins step 2")
	assert.Equal(t, -1, cmpOptLex(y, x))
	assert.Equal(t, 0, cmpOptLex(x, x))
}

// A completed season with strictly ordered records resolves without any
// tiebreak and every run is identical.
func TestRun_CompletedSeasonStrictOrder(t *testing.T) {
	games := concat(
		playedGame("Alpha", "Bravo", 28, 7),
		playedGame("Alpha", "Charlie", 35, 14),
		playedGame("Alpha", "Delta", 42, 0),
		playedGame("Bravo", "Charlie", 21, 14),
		playedGame("Bravo", "Delta", 28, 10),
		playedGame("Charlie", "Delta", 17, 10),
	)
	req := testRequest(schoolsFor("Alpha", "Bravo", "Charlie", "Delta"), games)
	req.Trials = 25
	req.Seed = 1

	res, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)

	firsts := []float64{0, 0, 0, 0}
	for i, name := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		row := rowFor(res.Rows, name)
		require.NotNil(t, row)
		firsts[i] = row.Odds1st
		assert.Equal(t, 1.0, row.FinalOddsPlayoffs, name)
		assert.True(t, row.Clinched, name)
		assert.False(t, row.Eliminated, name)
	}
	assert.Equal(t, []float64{1, 0, 0, 0}, firsts)
	assert.Equal(t, 1.0, rowFor(res.Rows, "Bravo").Odds2nd)
	assert.Equal(t, 1.0, rowFor(res.Rows, "Charlie").Odds3rd)
	assert.Equal(t, 1.0, rowFor(res.Rows, "Delta").Odds4th)
}

// A perfect three-way cycle that no step can break is co-placed over [1,3]
// and splits the odds of the first three places evenly.
func TestRun_CycleCoPlacement(t *testing.T) {
	games := concat(
		playedGame("Alpha", "Bravo", 21, 16),
		playedGame("Bravo", "Charlie", 21, 16),
		playedGame("Charlie", "Alpha", 21, 16),
		playedGame("Alpha", "Delta", 28, 7),
		playedGame("Bravo", "Delta", 28, 7),
		playedGame("Charlie", "Delta", 28, 7),
	)
	req := testRequest(schoolsFor("Alpha", "Bravo", "Charlie", "Delta"), games)
	req.Trials = 9
	req.Seed = 7

	res, err := Run(context.Background(), req)
	require.NoError(t, err)

	third := 0.33333 // round5(1/3)
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		row := rowFor(res.Rows, name)
		require.NotNil(t, row)
		assert.Equal(t, third, row.Odds1st, name)
		assert.Equal(t, third, row.Odds2nd, name)
		assert.Equal(t, third, row.Odds3rd, name)
		assert.Equal(t, 0.0, row.Odds4th, name)
		assert.InDelta(t, 1.0, row.OddsPlayoffs, 1e-4, name)
		assert.True(t, row.Clinched, name)
	}
	delta := rowFor(res.Rows, "Delta")
	assert.Equal(t, 1.0, delta.Odds4th)
	assert.Equal(t, 0.0, delta.Odds1st)
}

// The step-3 key clamps each head-to-head pair differential at ±PDCap, so a
// pair's +27 aggregate across two meetings counts as 12.
func TestTiebreak_CappedPairDifferential(t *testing.T) {
	// Alpha and Bravo split two meetings: Alpha wins by 30 and loses by 3,
	// leaving a +27 aggregate differential.
	fxGames := concat(
		playedGameOn("Alpha", "Bravo", "2025-09-05", 40, 10),
		playedGameOn("Bravo", "Alpha", "2025-10-10", 17, 14),
	)
	fx, err := buildFixtures(testRequest(schoolsFor("Alpha", "Bravo"), fxGames))
	require.NoError(t, err)
	require.Len(t, fx.completed, 1)
	assert.Equal(t, 0, fx.completed[0].resA, "series split")
	assert.Equal(t, 27, fx.completed[0].pdA)

	st := newSimState(fx.n())
	st.reset(fx)
	r := newPlaceRanker(fx)
	r.assign(st)

	// White-box on the step-3 key: clamped to ±12, not ±27.
	assert.Equal(t, 12, r.step3[0])
	assert.Equal(t, -12, r.step3[1])
	assert.Equal(t, 1, r.first[0])
	assert.Equal(t, 2, r.first[1])
}

// Null-least step 2 decides between two unbeaten teams that played different
// outside opponents.
func TestRun_Step2NullLeastDecides(t *testing.T) {
	games := concat(
		playedGame("Xray", "Oscar1", 20, 10),
		playedGame("Xray", "Oscar3", 20, 10),
		playedGame("Yankee", "Oscar1", 20, 10),
		playedGame("Yankee", "Oscar2", 20, 10),
	)
	req := testRequest(schoolsFor("Xray", "Yankee", "Oscar1", "Oscar2", "Oscar3"), games)
	req.Trials = 5
	req.Seed = 3

	res, err := Run(context.Background(), req)
	require.NoError(t, err)

	// Outside ranking for the {Xray, Yankee} bucket is Oscar2, Oscar3,
	// Oscar1 (fewest losses first, then name). Yankee shows a result against
	// the top-ranked outside opponent where Xray shows none.
	assert.Equal(t, 1.0, rowFor(res.Rows, "Yankee").Odds1st)
	assert.Equal(t, 1.0, rowFor(res.Rows, "Xray").Odds2nd)
}

// Every trial's slot ranges partition {1..N}.
func TestAssign_SlotRangesPartition(t *testing.T) {
	games := concat(
		playedGame("Alpha", "Bravo", 21, 14),
		playedGame("Charlie", "Delta", 17, 10),
		scheduledGame("Alpha", "Charlie"),
		scheduledGame("Alpha", "Delta"),
		scheduledGame("Bravo", "Charlie"),
		scheduledGame("Bravo", "Delta"),
		scheduledGame("Echo", "Alpha"),
		scheduledGame("Echo", "Bravo"),
		scheduledGame("Echo", "Charlie"),
		scheduledGame("Echo", "Delta"),
	)
	fx, err := buildFixtures(testRequest(
		schoolsFor("Alpha", "Bravo", "Charlie", "Delta", "Echo"), games))
	require.NoError(t, err)

	n := fx.n()
	st := newSimState(n)
	r := newPlaceRanker(fx)
	sampler := newScoreSampler(99)

	for trial := 0; trial < 200; trial++ {
		st.reset(fx)
		sampler.reseed(trialSeed(99, trial))
		for _, rp := range fx.remaining {
			aWins, wPts, lPts := sampler.sample()
			st.applySample(rp, aWins, wPts, lPts)
		}
		r.assign(st)

		covered := make([]int, n+1)
		for s := 0; s < n; s++ {
			require.LessOrEqual(t, 1, r.first[s])
			require.LessOrEqual(t, r.first[s], r.last[s])
			require.LessOrEqual(t, r.last[s], n)
			for k := r.first[s]; k <= r.last[s]; k++ {
				covered[k]++
			}
		}
		for k := 1; k <= n; k++ {
			require.GreaterOrEqual(t, covered[k], 1, "slot %d uncovered", k)
		}
		// Slot k is covered once per member of the tie group spanning it, so
		// coverage inside a school's range equals that range's width.
		for s := 0; s < n; s++ {
			g := r.last[s] - r.first[s] + 1
			for k := r.first[s]; k <= r.last[s]; k++ {
				require.Equal(t, g, covered[k], "slot %d coverage", k)
			}
		}
	}
}
