// Package report renders simulation output: the odds table shown after a
// run and the per-seed text report the league page publishes.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cmorgan/go-region-odds/internal/model"
)

// PrintOddsTable writes the per-school odds table for one region.
func PrintOddsTable(w io.Writer, rows []model.OddsRow) {
	t := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("SCHOOL", "1ST", "2ND", "3RD", "4TH", "PLAYOFFS", "FINAL", "STATUS")
	for _, r := range rows {
		t.Append(
			r.School,
			fmt.Sprintf("%.5f", r.Odds1st),
			fmt.Sprintf("%.5f", r.Odds2nd),
			fmt.Sprintf("%.5f", r.Odds3rd),
			fmt.Sprintf("%.5f", r.Odds4th),
			fmt.Sprintf("%.5f", r.OddsPlayoffs),
			fmt.Sprintf("%.5f", r.FinalOddsPlayoffs),
			statusLabel(r),
		)
	}
	t.Render()
}

func statusLabel(r model.OddsRow) string {
	switch {
	case r.Clinched:
		return "clinched"
	case r.Eliminated:
		return "eliminated"
	default:
		return ""
	}
}

// WriteSeeding renders the seeding text report: one section per seed with
// each school's probability, then the odds of missing, then eliminated
// schools. Zero-probability lines are omitted and empty sections read "None".
func WriteSeeding(w io.Writer, key model.RegionKey, rows []model.OddsRow) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Region %d-%dA\n\n", key.Region, key.Class)

	seedOdds := func(r model.OddsRow, seed int) float64 {
		switch seed {
		case 1:
			return r.Odds1st
		case 2:
			return r.Odds2nd
		case 3:
			return r.Odds3rd
		default:
			return r.Odds4th
		}
	}

	for seed := 1; seed <= 4; seed++ {
		fmt.Fprintf(&b, "%d Seed:\n", seed)
		sorted := sortByOdds(rows, func(r model.OddsRow) float64 { return seedOdds(r, seed) })
		wrote := false
		for _, r := range sorted {
			if p := seedOdds(r, seed); p > 0 {
				fmt.Fprintf(&b, "%s %s\n", pctStr(p), r.School)
				wrote = true
			}
		}
		if !wrote {
			b.WriteString("None\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("5 Seed (Out):\n")
	sorted := sortByOdds(rows, func(r model.OddsRow) float64 { return 1 - r.OddsPlayoffs })
	wrote := false
	for _, r := range sorted {
		if p := 1 - r.OddsPlayoffs; p > 0 {
			fmt.Fprintf(&b, "%s %s\n", pctStr(p), r.School)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("None\n")
	}

	b.WriteString("\nEliminated:\n")
	wrote = false
	for _, r := range sortByOdds(rows, func(r model.OddsRow) float64 { return 0 }) {
		if r.Eliminated {
			fmt.Fprintf(&b, "%s\n", r.School)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("None\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sortByOdds returns rows ordered by the given probability descending, then
// school ascending. A zero-valued extractor yields plain name order.
func sortByOdds(rows []model.OddsRow, odds func(model.OddsRow) float64) []model.OddsRow {
	out := make([]model.OddsRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := odds(out[i]), odds(out[j])
		if oi != oj {
			return oi > oj
		}
		return out[i].School < out[j].School
	})
	return out
}

// pctStr formats a probability as a percentage, dropping the decimals when
// the value rounds cleanly.
func pctStr(x float64) string {
	val := x * 100.0
	if math.Abs(val-math.Round(val)) < 1e-9 {
		return fmt.Sprintf("%d%%", int(math.Round(val)))
	}
	s := strconv.FormatFloat(val, 'f', 1, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}
