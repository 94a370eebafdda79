package sim

import "sort"

// Win percentage is compared as the exact rational (2W+T)/(2·gp) via
// cross-multiplication, so equal records always land in the same bucket with
// no float rounding involved.

// winPctNum returns the numerator 2W+T for school i under st.
func (st *simState) winPctNum(i int) int {
	return 2*st.wins[i] + st.ties[i]
}

// cmpWinPct orders by win percentage descending: -1 when i ranks ahead of j.
func cmpWinPct(st *simState, fx *fixtures, i, j int) int {
	gi, gj := fx.gamesPlayed[i], fx.gamesPlayed[j]
	ni, nj := st.winPctNum(i), st.winPctNum(j)
	if gi == 0 {
		ni, gi = 0, 1
	}
	if gj == 0 {
		nj, gj = 0, 1
	}
	lhs := ni * gj
	rhs := nj * gi
	switch {
	case lhs > rhs:
		return -1
	case lhs < rhs:
		return 1
	default:
		return 0
	}
}

// baseOrder fills dst with all school indices sorted by
// (win_pct desc, region losses asc, school asc). School names are sorted at
// fixture build, so index order is name order.
func baseOrder(dst []int, st *simState, fx *fixtures) {
	for i := range dst {
		dst[i] = i
	}
	sort.Slice(dst, func(x, y int) bool {
		i, j := dst[x], dst[y]
		if c := cmpWinPct(st, fx, i, j); c != 0 {
			return c < 0
		}
		if st.losses[i] != st.losses[j] {
			return st.losses[i] < st.losses[j]
		}
		return i < j
	})
}

// bucketBounds appends [start,end) index ranges over a base-ordered slice,
// one per dense-rank bucket of equal (win_pct, losses). The school name never
// splits a bucket.
func bucketBounds(dst [][2]int, order []int, st *simState, fx *fixtures) [][2]int {
	dst = dst[:0]
	start := 0
	for k := 1; k <= len(order); k++ {
		if k == len(order) ||
			cmpWinPct(st, fx, order[start], order[k]) != 0 ||
			st.losses[order[start]] != st.losses[order[k]] {
			dst = append(dst, [2]int{start, k})
			start = k
		}
	}
	return dst
}
