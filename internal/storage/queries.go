package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/cmorgan/go-region-odds/internal/model"
)

// InsertSchools bulk-inserts school records in a transaction. Uses INSERT OR
// REPLACE so re-importing a snapshot is idempotent.
func (db *DB) InsertSchools(schools []model.School) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO schools(school, class, region, season)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range schools {
		if _, err := stmt.Exec(s.School, s.Class, s.Region, s.Season); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertGames bulk-inserts game rows in a transaction.
func (db *DB) InsertGames(games []model.Game) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			school, opponent, season, date, final, region_game,
			result, points_for, points_against
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		var result any
		var pf, pa any
		if g.IsFinal {
			result = string(g.Result)
			pf, pa = g.PointsFor, g.PointsAgainst
		}
		if _, err := stmt.Exec(
			g.School, g.Opponent, g.Season, g.Date,
			boolInt(g.IsFinal), boolInt(g.IsRegion),
			result, pf, pa,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SchoolsForRegion returns the schools of one (class, region, season),
// ordered by name.
func (db *DB) SchoolsForRegion(key model.RegionKey) ([]model.School, error) {
	rows, err := db.conn.Query(`
		SELECT school, class, region, season FROM schools
		WHERE class = ? AND region = ? AND season = ?
		ORDER BY school`,
		key.Class, key.Region, key.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.School
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.School, &s.Class, &s.Region, &s.Season); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GamesForSchools returns all game rows for a season whose reporting school
// is in the given set.
func (db *DB) GamesForSchools(season int, schools []string) ([]model.Game, error) {
	if len(schools) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(schools)), ",")
	args := make([]any, 0, len(schools)+1)
	args = append(args, season)
	for _, s := range schools {
		args = append(args, s)
	}

	rows, err := db.conn.Query(fmt.Sprintf(`
		SELECT school, opponent, season, date, final, region_game,
		       result, points_for, points_against
		FROM games
		WHERE season = ? AND school IN (%s)
		ORDER BY school, opponent, date`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Game
	for rows.Next() {
		var g model.Game
		var final, region int
		var result sql.NullString
		var pf, pa sql.NullInt64
		if err := rows.Scan(&g.School, &g.Opponent, &g.Season, &g.Date,
			&final, &region, &result, &pf, &pa); err != nil {
			return nil, err
		}
		g.IsFinal = final != 0
		g.IsRegion = region != 0
		if result.Valid {
			g.Result = model.Result(result.String)
		}
		if pf.Valid {
			g.PointsFor = int(pf.Int64)
		}
		if pa.Valid {
			g.PointsAgainst = int(pa.Int64)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListRegions enumerates the distinct regions present in the store, ordered
// by season desc, class, region.
func (db *DB) ListRegions() ([]model.RegionKey, error) {
	rows, err := db.conn.Query(`
		SELECT DISTINCT class, region, season FROM schools
		ORDER BY season DESC, class, region`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RegionKey
	for rows.Next() {
		var k model.RegionKey
		if err := rows.Scan(&k.Class, &k.Region, &k.Season); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpsertStandings writes one run's odds rows, replacing any prior rows for
// the same (school, season).
func (db *DB) UpsertStandings(standings []model.StandingsRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO region_standings(
			school, season, class, region,
			wins, losses, ties,
			region_wins, region_losses, region_ties,
			odds_1st, odds_2nd, odds_3rd, odds_4th,
			odds_playoffs, final_odds_playoffs,
			clinched, eliminated,
			run_id, rng_seed, trials
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range standings {
		if _, err := stmt.Exec(
			r.School, r.Season, r.Class, r.Region,
			r.Wins, r.Losses, r.Ties,
			r.RegionWins, r.RegionLosses, r.RegionTies,
			r.Odds1st, r.Odds2nd, r.Odds3rd, r.Odds4th,
			r.OddsPlayoffs, r.FinalOddsPlayoffs,
			boolInt(r.Clinched), boolInt(r.Eliminated),
			r.RunID, strconv.FormatUint(r.Seed, 10), r.Trials,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// StandingsForRegion returns the stored odds rows for one region, ordered by
// final playoff odds desc, school asc.
func (db *DB) StandingsForRegion(key model.RegionKey) ([]model.StandingsRow, error) {
	rows, err := db.conn.Query(`
		SELECT school, season, class, region,
		       wins, losses, ties,
		       region_wins, region_losses, region_ties,
		       odds_1st, odds_2nd, odds_3rd, odds_4th,
		       odds_playoffs, final_odds_playoffs,
		       clinched, eliminated,
		       run_id, rng_seed, trials
		FROM region_standings
		WHERE class = ? AND region = ? AND season = ?
		ORDER BY final_odds_playoffs DESC, school`,
		key.Class, key.Region, key.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StandingsRow
	for rows.Next() {
		var r model.StandingsRow
		var clinched, eliminated int
		var seed sql.NullString
		var runID sql.NullString
		var trials sql.NullInt64
		if err := rows.Scan(&r.School, &r.Season, &r.Class, &r.Region,
			&r.Wins, &r.Losses, &r.Ties,
			&r.RegionWins, &r.RegionLosses, &r.RegionTies,
			&r.Odds1st, &r.Odds2nd, &r.Odds3rd, &r.Odds4th,
			&r.OddsPlayoffs, &r.FinalOddsPlayoffs,
			&clinched, &eliminated,
			&runID, &seed, &trials); err != nil {
			return nil, err
		}
		r.Clinched = clinched != 0
		r.Eliminated = eliminated != 0
		r.RunID = runID.String
		if seed.Valid {
			r.Seed, _ = strconv.ParseUint(seed.String, 10, 64)
		}
		r.Trials = int(trials.Int64)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
