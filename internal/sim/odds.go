package sim

import (
	"math"
	"sort"

	"github.com/cmorgan/go-region-odds/internal/model"
)

// finalize turns raw slot counts into odds rows: per-slot odds, playoff odds,
// clinch/elimination clamping, and renormalization of the active playoff mass
// against the spots that are not already locked or lost.
func finalize(fx *fixtures, counts []int64, trials int) []model.OddsRow {
	n := fx.n()
	denom := float64(trials) * float64(fx.slotScale)

	type line struct {
		slots      [PlayoffSpots]float64
		playoffs   float64
		adj        float64
		clinched   bool
		eliminated bool
	}
	lines := make([]line, n)

	clinchedSpots := 0.0
	sumActive := 0.0
	for s := 0; s < n; s++ {
		ln := &lines[s]
		total := int64(0)
		for k := 0; k < PlayoffSpots; k++ {
			ln.slots[k] = float64(counts[s*PlayoffSpots+k]) / denom
			total += counts[s*PlayoffSpots+k]
		}
		ln.playoffs = float64(total) / denom
		ln.clinched = ln.playoffs >= ClinchThreshold
		ln.eliminated = ln.playoffs <= ElimThreshold
		switch {
		case ln.clinched:
			ln.adj = 1.0
			clinchedSpots += ln.adj
		case ln.eliminated:
			ln.adj = 0.0
		default:
			ln.adj = ln.playoffs
			sumActive += ln.adj
		}
	}
	freeSpots := float64(PlayoffSpots) - clinchedSpots

	rows := make([]model.OddsRow, n)
	for s := 0; s < n; s++ {
		ln := &lines[s]
		final := ln.adj
		if !ln.clinched && !ln.eliminated && sumActive > 0 {
			final = ln.adj * (freeSpots / sumActive)
		}

		clinched, eliminated := ln.clinched, ln.eliminated
		// Renormalization can push an active team past the thresholds;
		// clamp again so near-certain outcomes read as certain.
		if final >= ClinchThreshold {
			final = 1.0
			clinched = true
		} else if final <= ElimThreshold {
			final = 0.0
			eliminated = true
		}

		rows[s] = model.OddsRow{
			School:            fx.schools[s],
			Class:             fx.key.Class,
			Region:            fx.key.Region,
			Season:            fx.key.Season,
			Odds1st:           round5(ln.slots[0]),
			Odds2nd:           round5(ln.slots[1]),
			Odds3rd:           round5(ln.slots[2]),
			Odds4th:           round5(ln.slots[3]),
			OddsPlayoffs:      round5(ln.playoffs),
			FinalOddsPlayoffs: round5(final),
			Clinched:          clinched,
			Eliminated:        eliminated,
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		if rows[i].FinalOddsPlayoffs != rows[j].FinalOddsPlayoffs {
			return rows[i].FinalOddsPlayoffs > rows[j].FinalOddsPlayoffs
		}
		return rows[i].School < rows[j].School
	})
	return rows
}

func round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}
