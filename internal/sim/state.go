package sim

// simState is one worker's per-trial scratch: standings tallies and the
// head-to-head store. Buffers are allocated once and reset by copying the
// fixtures baseline, never reallocated.
type simState struct {
	n int

	wins, losses, ties []int
	ptsAllowed         []int

	// h2hPts[i*n+j] is i's match points against j (win 1, tie ½);
	// h2hPD[i*n+j] is i's signed point differential against j.
	h2hPts []float64
	h2hPD  []int
}

func newSimState(n int) *simState {
	return &simState{
		n:          n,
		wins:       make([]int, n),
		losses:     make([]int, n),
		ties:       make([]int, n),
		ptsAllowed: make([]int, n),
		h2hPts:     make([]float64, n*n),
		h2hPD:      make([]int, n*n),
	}
}

// reset restores the baseline seeded from completed pairs.
func (st *simState) reset(fx *fixtures) {
	copy(st.wins, fx.baseWins)
	copy(st.losses, fx.baseLosses)
	copy(st.ties, fx.baseTies)
	copy(st.ptsAllowed, fx.basePA)
	copy(st.h2hPts, fx.baseH2HPts)
	copy(st.h2hPD, fx.baseH2HPD)
}

// applySample merges one sampled game into the standings and H2H store.
func (st *simState) applySample(p remainingPair, aWins bool, winnerPts, loserPts int) {
	w, l := p.a, p.b
	if !aWins {
		w, l = p.b, p.a
	}
	st.wins[w]++
	st.losses[l]++
	st.ptsAllowed[w] += loserPts
	st.ptsAllowed[l] += winnerPts

	margin := winnerPts - loserPts
	st.h2hPts[w*st.n+l] += 1
	st.h2hPD[w*st.n+l] += margin
	st.h2hPD[l*st.n+w] -= margin
}

func (st *simState) pts(i, j int) float64 { return st.h2hPts[i*st.n+j] }
func (st *simState) pd(i, j int) int      { return st.h2hPD[i*st.n+j] }
