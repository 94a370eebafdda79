package sim

import (
	"github.com/cmorgan/go-region-odds/internal/model"
)

// Shared snapshot builders. Games are always emitted both-sided, the way a
// real scrape stores them.

const (
	testClass  = 4
	testRegion = 2
	testSeason = 2025
)

func schoolsFor(names ...string) []model.School {
	out := make([]model.School, len(names))
	for i, name := range names {
		out[i] = model.School{School: name, Class: testClass, Region: testRegion, Season: testSeason}
	}
	return out
}

func playedGame(a, b string, aPts, bPts int) []model.Game {
	resA, resB := model.ResultWin, model.ResultLoss
	switch {
	case aPts < bPts:
		resA, resB = model.ResultLoss, model.ResultWin
	case aPts == bPts:
		resA, resB = model.ResultTie, model.ResultTie
	}
	return []model.Game{
		{School: a, Opponent: b, Season: testSeason, IsFinal: true, IsRegion: true,
			Result: resA, PointsFor: aPts, PointsAgainst: bPts},
		{School: b, Opponent: a, Season: testSeason, IsFinal: true, IsRegion: true,
			Result: resB, PointsFor: bPts, PointsAgainst: aPts},
	}
}

func playedGameOn(a, b, date string, aPts, bPts int) []model.Game {
	games := playedGame(a, b, aPts, bPts)
	for i := range games {
		games[i].Date = date
	}
	return games
}

func scheduledGame(a, b string) []model.Game {
	return []model.Game{
		{School: a, Opponent: b, Season: testSeason, IsRegion: true},
		{School: b, Opponent: a, Season: testSeason, IsRegion: true},
	}
}

func concat(groups ...[]model.Game) []model.Game {
	var out []model.Game
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func testRequest(schools []model.School, games []model.Game) Request {
	return Request{
		Class:   testClass,
		Region:  testRegion,
		Season:  testSeason,
		Schools: schools,
		Games:   games,
	}
}

func rowFor(rows []model.OddsRow, school string) *model.OddsRow {
	for i := range rows {
		if rows[i].School == school {
			return &rows[i]
		}
	}
	return nil
}
