package sim

import "sort"

// optInt is an optional integer for the lexicographic tiebreak arrays.
// A missing value ("no game") compares as worse than any present value.
type optInt struct {
	v  int
	ok bool
}

// cmpOpt orders two optional values with higher-is-better semantics:
// -1 when a ranks ahead of b.
func cmpOpt(a, b optInt) int {
	switch {
	case a.ok && b.ok:
		switch {
		case a.v > b.v:
			return -1
		case a.v < b.v:
			return 1
		default:
			return 0
		}
	case a.ok:
		return -1
	case b.ok:
		return 1
	default:
		return 0
	}
}

// cmpOptLex compares equal-length arrays element by element; the first
// non-equal position decides.
func cmpOptLex(a, b []optInt) int {
	for k := range a {
		if c := cmpOpt(a[k], b[k]); c != 0 {
			return c
		}
	}
	return 0
}

// placeRanker turns one trial's simState into per-school slot ranges. All
// scratch buffers are pre-sized to the region and reused across trials.
type placeRanker struct {
	fx *fixtures

	base    []int
	work    []int
	buckets [][2]int
	outside []int

	// Tiebreak keys, indexed by school so they survive sorting the bucket.
	step1 []float64
	step3 []int
	step5 []int
	step2 []optInt // school-major rows of len(outside) values
	step4 []optInt

	first, last []int
}

func newPlaceRanker(fx *fixtures) *placeRanker {
	n := fx.n()
	return &placeRanker{
		fx:      fx,
		base:    make([]int, n),
		work:    make([]int, n),
		outside: make([]int, 0, n),
		step1:   make([]float64, n),
		step3:   make([]int, n),
		step5:   make([]int, n),
		step2:   make([]optInt, n*n),
		step4:   make([]optInt, n*n),
		first:   make([]int, n),
		last:    make([]int, n),
	}
}

// assign computes each school's [first, last] slot range for the trial.
// Buckets are enumerated in base order; inside a bucket the five-step
// comparator orders the teams, and teams equal on every step are co-placed
// over a shared slot range. School order only stabilizes output, it never
// splits a tie.
func (r *placeRanker) assign(st *simState) {
	baseOrder(r.base, st, r.fx)
	r.buckets = bucketBounds(r.buckets, r.base, st, r.fx)

	slot := 1
	for _, bb := range r.buckets {
		lo, hi := bb[0], bb[1]
		size := hi - lo
		if size == 1 {
			s := r.base[lo]
			r.first[s], r.last[s] = slot, slot
			slot++
			continue
		}

		members := r.work[:size]
		copy(members, r.base[lo:hi])
		r.computeKeys(st, lo, hi)

		sort.SliceStable(members, func(x, y int) bool {
			return r.compare(members[x], members[y]) < 0
		})

		// Co-place runs that remain equal after all five steps.
		g := 0
		for g < size {
			h := g + 1
			for h < size && r.compare(members[g], members[h]) == 0 {
				h++
			}
			for _, s := range members[g:h] {
				r.first[s] = slot + g
				r.last[s] = slot + h - 1
			}
			g = h
		}
		slot += size
	}
}

// computeKeys fills the five step keys for the bucket occupying base[lo:hi].
func (r *placeRanker) computeKeys(st *simState, lo, hi int) {
	fx := r.fx
	n := fx.n()

	// Outside opponents, highest-ranked first: the base order minus the
	// bucket itself.
	r.outside = r.outside[:0]
	for k, s := range r.base {
		if k < lo || k >= hi {
			r.outside = append(r.outside, s)
		}
	}

	for _, s := range r.base[lo:hi] {
		// Step 1: head-to-head match points among the tied teams.
		// Step 3: head-to-head point differential among them, each pair
		// clamped to ±PDCap.
		pts := 0.0
		cappedPD := 0
		for _, o := range r.base[lo:hi] {
			if o == s {
				continue
			}
			pts += st.pts(s, o)
			cappedPD += clamp(st.pd(s, o), -PDCap, PDCap)
		}
		r.step1[s] = pts
		r.step3[s] = cappedPD
		r.step5[s] = st.ptsAllowed[s]

		// Steps 2 and 4: results and uncapped point differential against
		// each outside opponent in rank order; no game is null.
		row2 := r.step2[s*n : s*n+len(r.outside)]
		row4 := r.step4[s*n : s*n+len(r.outside)]
		for k, o := range r.outside {
			if !fx.played[s*n+o] {
				row2[k] = optInt{}
				row4[k] = optInt{}
				continue
			}
			row2[k] = optInt{v: resultValue(st.pts(s, o)), ok: true}
			row4[k] = optInt{v: st.pd(s, o), ok: true}
		}
	}
}

// compare applies the five-step comparator: -1 when school i finishes ahead
// of school j, 0 when they are still tied after every step.
func (r *placeRanker) compare(i, j int) int {
	switch {
	case r.step1[i] > r.step1[j]:
		return -1
	case r.step1[i] < r.step1[j]:
		return 1
	}

	n := r.fx.n()
	out := len(r.outside)
	if c := cmpOptLex(r.step2[i*n:i*n+out], r.step2[j*n:j*n+out]); c != 0 {
		return c
	}

	switch {
	case r.step3[i] > r.step3[j]:
		return -1
	case r.step3[i] < r.step3[j]:
		return 1
	}

	if c := cmpOptLex(r.step4[i*n:i*n+out], r.step4[j*n:j*n+out]); c != 0 {
		return c
	}

	// Step 5: fewest region points allowed.
	switch {
	case r.step5[i] < r.step5[j]:
		return -1
	case r.step5[i] > r.step5[j]:
		return 1
	}
	return 0
}

// resultValue maps head-to-head match points for a single pair onto the
// step-2 encoding: win 2, tie 1, loss 0.
func resultValue(pts float64) int {
	switch {
	case pts == 1:
		return 2
	case pts == 0.5:
		return 1
	default:
		return 0
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
