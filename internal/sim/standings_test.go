package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Equal records at different schedule lengths compare equal: 2-1 and 4-2 are
// the same win percentage, with no float rounding involved.
func TestCmpWinPct_ExactRationalCompare(t *testing.T) {
	games := concat(
		// Alpha: 2-1.
		playedGame("Alpha", "Delta", 21, 14),
		playedGame("Alpha", "Echo", 21, 14),
		playedGame("Foxtrot", "Alpha", 20, 13),
		// Bravo: 4-2 on a six-game slate.
		playedGame("Bravo", "Delta", 21, 14),
		playedGame("Bravo", "Echo", 21, 14),
		playedGame("Bravo", "Golf", 21, 14),
		playedGame("Bravo", "Hotel", 21, 14),
		playedGame("Foxtrot", "Bravo", 20, 13),
		playedGame("India", "Bravo", 27, 0),
	)
	schools := schoolsFor("Alpha", "Bravo", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India")
	fx, err := buildFixtures(testRequest(schools, games))
	require.NoError(t, err)

	st := newSimState(fx.n())
	st.reset(fx)

	a, b := fx.index["Alpha"], fx.index["Bravo"]
	assert.Equal(t, 0, cmpWinPct(st, fx, a, b), "2/3 == 4/6 exactly")
}

func TestBaseOrder_ZeroGamesRanksAsZeroPct(t *testing.T) {
	games := playedGame("Alpha", "Bravo", 21, 14)
	fx, err := buildFixtures(testRequest(schoolsFor("Alpha", "Bravo", "Idle"), games))
	require.NoError(t, err)

	st := newSimState(fx.n())
	st.reset(fx)

	order := make([]int, fx.n())
	baseOrder(order, st, fx)

	// Alpha 1-0, then Idle (0 pct, 0 losses) ahead of Bravo (0 pct, 1 loss).
	assert.Equal(t, "Alpha", fx.schools[order[0]])
	assert.Equal(t, "Idle", fx.schools[order[1]])
	assert.Equal(t, "Bravo", fx.schools[order[2]])
}

// Dense-rank bucketing: schools tie into one bucket on (win pct, losses)
// alone; names never split a bucket.
func TestBucketBounds_DenseRank(t *testing.T) {
	games := concat(
		playedGame("Alpha", "Charlie", 21, 14),
		playedGame("Bravo", "Delta", 21, 14),
	)
	fx, err := buildFixtures(testRequest(schoolsFor("Alpha", "Bravo", "Charlie", "Delta"), games))
	require.NoError(t, err)

	st := newSimState(fx.n())
	st.reset(fx)

	order := make([]int, fx.n())
	baseOrder(order, st, fx)
	bounds := bucketBounds(nil, order, st, fx)

	require.Len(t, bounds, 2)
	assert.Equal(t, 2, bounds[0][1]-bounds[0][0], "both 1-0 schools share the top bucket")
	assert.Equal(t, 2, bounds[1][1]-bounds[1][0], "both 0-1 schools share the bottom bucket")
}
