package sim

import (
	"sort"

	"github.com/cmorgan/go-region-odds/internal/model"
)

// completedPair is the collapsed record of all finished meetings between two
// region schools, from the lexicographically lesser school's (a's) side.
type completedPair struct {
	a, b int // dense school indices, schools[a] < schools[b]

	// resA is the series result sign: +1 a won, 0 split/tied, -1 b won.
	resA int
	// pdA is a's summed signed point differential across the meetings.
	pdA int
	// paA and paB are points allowed by a and b in those meetings.
	paA, paB int
}

// remainingPair is an unplayed region matchup to be simulated each trial.
type remainingPair struct {
	a, b int
}

// fixtures is the immutable per-run input shared read-only by all workers:
// the dense school index, the completed/remaining pair partition, and the
// baseline standings and head-to-head state seeded from completed games.
type fixtures struct {
	key     model.RegionKey
	schools []string // sorted ascending; position = dense index
	index   map[string]int

	completed []completedPair
	remaining []remainingPair

	// played[i*n+j] reports whether a region pair exists between i and j
	// (completed or remaining); "no game" in tiebreak steps 2 and 4.
	played []bool

	// gamesPlayed[i] is the count of pairs touching school i; constant
	// across trials because every remaining pair resolves to a result.
	gamesPlayed []int

	// slotScale is lcm(1..n): a school co-placed over a g-wide range credits
	// slotScale/g per covered slot, keeping the accumulator in exact
	// integers so merged counts are identical for any worker split.
	slotScale int64

	// Baseline per-school tallies and head-to-head matrices from completed
	// pairs only. Per-trial state starts as a copy of these.
	baseWins, baseLosses, baseTies, basePA []int
	baseH2HPts                             []float64
	baseH2HPD                              []int
}

func (fx *fixtures) n() int { return len(fx.schools) }

// sideAgg accumulates one perspective's rows for a pair, normalized to a's
// point of view.
type sideAgg struct {
	res int
	pd  int
	paA int
	paB int
}

// buildFixtures filters the snapshot to the requested region, collapses
// both-sided game rows into unique pairs, and precomputes the baseline state.
func buildFixtures(req Request) (*fixtures, error) {
	names := make([]string, 0, len(req.Schools))
	for _, s := range req.Schools {
		if s.Class == req.Class && s.Region == req.Region && s.Season == req.Season {
			names = append(names, s.School)
		}
	}
	if len(names) == 0 {
		return nil, errf(ErrEmptyRegion, "no schools for class=%d region=%d season=%d",
			req.Class, req.Region, req.Season)
	}
	sort.Strings(names)

	fx := &fixtures{
		key:     model.RegionKey{Class: req.Class, Region: req.Region, Season: req.Season},
		schools: names,
		index:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		fx.index[name] = i
	}
	n := len(names)
	fx.slotScale = lcmUpTo(n)
	fx.played = make([]bool, n*n)
	fx.gamesPlayed = make([]int, n)
	fx.baseWins = make([]int, n)
	fx.baseLosses = make([]int, n)
	fx.baseTies = make([]int, n)
	fx.basePA = make([]int, n)
	fx.baseH2HPts = make([]float64, n*n)
	fx.baseH2HPD = make([]int, n*n)

	// Aggregate final games per pair, keeping the two reporting sides
	// separate so disagreements can be detected. The lesser school's side is
	// canonical: when both sides exist, its scores win. This is the single
	// place that rule lives.
	type pairKey struct{ a, b int }
	fromA := make(map[pairKey]*sideAgg)
	fromB := make(map[pairKey]*sideAgg)
	remainingSet := make(map[pairKey]bool)

	for _, g := range req.Games {
		if g.Season != req.Season || !g.IsRegion {
			continue
		}
		si, sOK := fx.index[g.School]
		oi, oOK := fx.index[g.Opponent]
		if !sOK && !oOK {
			continue // another region's game
		}
		if sOK != oOK {
			return nil, errf(ErrMissingOpponent, "region game %s vs %s touches a school outside the region",
				g.School, g.Opponent)
		}
		if si == oi {
			return nil, errf(ErrInvalidInput, "school %s scheduled against itself", g.School)
		}

		a, b := si, oi
		fromLesser := true
		if a > b {
			a, b = b, a
			fromLesser = false
		}
		key := pairKey{a, b}

		if !g.IsFinal {
			remainingSet[key] = true
			continue
		}

		if !g.Result.Valid() {
			return nil, errf(ErrInvalidInput, "unknown result %q for %s vs %s", g.Result, g.School, g.Opponent)
		}
		if g.PointsFor < 0 || g.PointsAgainst < 0 {
			return nil, errf(ErrInvalidInput, "negative points for %s vs %s", g.School, g.Opponent)
		}

		side := fromA
		if !fromLesser {
			side = fromB
		}
		agg := side[key]
		if agg == nil {
			agg = &sideAgg{}
			side[key] = agg
		}
		switch g.Result {
		case model.ResultWin:
			if fromLesser {
				agg.res++
			} else {
				agg.res--
			}
		case model.ResultLoss:
			if fromLesser {
				agg.res--
			} else {
				agg.res++
			}
		}
		if fromLesser {
			agg.pd += g.PointDiff()
			agg.paA += g.PointsAgainst
			agg.paB += g.PointsFor
		} else {
			agg.pd -= g.PointDiff()
			agg.paA += g.PointsFor
			agg.paB += g.PointsAgainst
		}
	}

	// Merge sides into completed pairs.
	keys := make([]pairKey, 0, len(fromA)+len(fromB))
	seen := make(map[pairKey]bool)
	for k := range fromA {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range fromB {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	for _, k := range keys {
		aggA, aggB := fromA[k], fromB[k]
		if aggA != nil && aggB != nil && sign(aggA.res) != sign(aggB.res) {
			return nil, errf(ErrInconsistentPair, "%s vs %s: the two sides disagree on the series result",
				fx.schools[k.a], fx.schools[k.b])
		}
		agg := aggA
		if agg == nil {
			agg = aggB
		}
		fx.completed = append(fx.completed, completedPair{
			a:    k.a,
			b:    k.b,
			resA: sign(agg.res),
			pdA:  agg.pd,
			paA:  agg.paA,
			paB:  agg.paB,
		})
		// A pair with a finished meeting is completed even if a rematch is
		// still on the schedule.
		delete(remainingSet, k)
	}

	remKeys := make([]pairKey, 0, len(remainingSet))
	for k := range remainingSet {
		remKeys = append(remKeys, k)
	}
	sort.Slice(remKeys, func(i, j int) bool {
		if remKeys[i].a != remKeys[j].a {
			return remKeys[i].a < remKeys[j].a
		}
		return remKeys[i].b < remKeys[j].b
	})
	for _, k := range remKeys {
		fx.remaining = append(fx.remaining, remainingPair{a: k.a, b: k.b})
	}

	// Baseline tallies and pair bookkeeping.
	for _, cp := range fx.completed {
		fx.markPair(cp.a, cp.b)
		switch cp.resA {
		case 1:
			fx.baseWins[cp.a]++
			fx.baseLosses[cp.b]++
		case -1:
			fx.baseWins[cp.b]++
			fx.baseLosses[cp.a]++
		default:
			fx.baseTies[cp.a]++
			fx.baseTies[cp.b]++
		}
		fx.basePA[cp.a] += cp.paA
		fx.basePA[cp.b] += cp.paB

		switch cp.resA {
		case 1:
			fx.baseH2HPts[cp.a*n+cp.b] += 1
		case -1:
			fx.baseH2HPts[cp.b*n+cp.a] += 1
		default:
			fx.baseH2HPts[cp.a*n+cp.b] += 0.5
			fx.baseH2HPts[cp.b*n+cp.a] += 0.5
		}
		fx.baseH2HPD[cp.a*n+cp.b] += cp.pdA
		fx.baseH2HPD[cp.b*n+cp.a] -= cp.pdA
	}
	for _, rp := range fx.remaining {
		fx.markPair(rp.a, rp.b)
	}

	return fx, nil
}

func (fx *fixtures) markPair(i, j int) {
	n := fx.n()
	fx.played[i*n+j] = true
	fx.played[j*n+i] = true
	fx.gamesPlayed[i]++
	fx.gamesPlayed[j]++
}

func lcmUpTo(n int) int64 {
	l := int64(1)
	for k := int64(2); k <= int64(n); k++ {
		l = l / gcd(l, k) * k
	}
	return l
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
