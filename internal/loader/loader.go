// Package loader imports frozen snapshot CSVs into model records. Scraping
// and upstream pipelines stay outside this tool; these files are the boundary
// where a season snapshot enters.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cmorgan/go-region-odds/internal/model"
)

// ReadSchoolsFile reads a schools CSV with header
// school,class,region,season.
func ReadSchoolsFile(path string) ([]model.School, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schools csv: %w", err)
	}
	defer f.Close()
	return ReadSchools(f)
}

// ReadSchools parses school records from r.
func ReadSchools(r io.Reader) ([]model.School, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read schools header: %w", err)
	}
	cols, err := columnIndex(header, []string{"school", "class", "region", "season"})
	if err != nil {
		return nil, err
	}

	var out []model.School
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read schools row: %w", err)
		}
		line++

		s := model.School{School: rec[cols["school"]]}
		if s.School == "" {
			return nil, fmt.Errorf("schools line %d: empty school name", line)
		}
		if s.Class, err = atoi(rec[cols["class"]], "class", line); err != nil {
			return nil, err
		}
		if s.Region, err = atoi(rec[cols["region"]], "region", line); err != nil {
			return nil, err
		}
		if s.Season, err = atoi(rec[cols["season"]], "season", line); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadGamesFile reads a games CSV with header
// school,opponent,season,date,final,region_game,result,points_for,points_against.
// Result and points columns may be empty for unplayed games.
func ReadGamesFile(path string) ([]model.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open games csv: %w", err)
	}
	defer f.Close()
	return ReadGames(f)
}

// ReadGames parses game records from r.
func ReadGames(r io.Reader) ([]model.Game, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read games header: %w", err)
	}
	cols, err := columnIndex(header, []string{
		"school", "opponent", "season", "date", "final", "region_game",
		"result", "points_for", "points_against",
	})
	if err != nil {
		return nil, err
	}

	var out []model.Game
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read games row: %w", err)
		}
		line++

		g := model.Game{
			School:   rec[cols["school"]],
			Opponent: rec[cols["opponent"]],
			Date:     rec[cols["date"]],
		}
		if g.School == "" || g.Opponent == "" {
			return nil, fmt.Errorf("games line %d: empty school or opponent", line)
		}
		if g.Season, err = atoi(rec[cols["season"]], "season", line); err != nil {
			return nil, err
		}
		if g.IsFinal, err = parseBool(rec[cols["final"]], "final", line); err != nil {
			return nil, err
		}
		if g.IsRegion, err = parseBool(rec[cols["region_game"]], "region_game", line); err != nil {
			return nil, err
		}

		if g.IsFinal {
			g.Result = model.Result(strings.ToUpper(rec[cols["result"]]))
			if !g.Result.Valid() {
				return nil, fmt.Errorf("games line %d: bad result %q", line, rec[cols["result"]])
			}
			if g.PointsFor, err = atoi(rec[cols["points_for"]], "points_for", line); err != nil {
				return nil, err
			}
			if g.PointsAgainst, err = atoi(rec[cols["points_against"]], "points_against", line); err != nil {
				return nil, err
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// columnIndex maps required header names to positions, case-insensitively.
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	return idx, nil
}

func atoi(s, col string, line int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("line %d: bad %s %q", line, col, s)
	}
	return v, nil
}

func parseBool(s, col string, line int) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes":
		return true, nil
	case "0", "f", "false", "n", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("line %d: bad %s %q", line, col, s)
}
