package loader

import (
	"strings"
	"testing"

	"github.com/cmorgan/go-region-odds/internal/model"
)

func TestReadSchools(t *testing.T) {
	csv := `school,class,region,season
Corinth,4,1,2025
New Albany,4,1,2025
`
	schools, err := ReadSchools(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadSchools: %v", err)
	}
	if len(schools) != 2 {
		t.Fatalf("expected 2 schools, got %d", len(schools))
	}
	want := model.School{School: "New Albany", Class: 4, Region: 1, Season: 2025}
	if schools[1] != want {
		t.Errorf("got %+v, want %+v", schools[1], want)
	}
}

func TestReadSchools_HeaderOrderIndependent(t *testing.T) {
	csv := `season,school,region,class
2025,Corinth,1,4
`
	schools, err := ReadSchools(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadSchools: %v", err)
	}
	if schools[0].Class != 4 || schools[0].Region != 1 {
		t.Errorf("columns misread: %+v", schools[0])
	}
}

func TestReadSchools_MissingColumn(t *testing.T) {
	csv := `school,class,region
Corinth,4,1
`
	if _, err := ReadSchools(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing season column")
	}
}

func TestReadGames(t *testing.T) {
	csv := `school,opponent,season,date,final,region_game,result,points_for,points_against
Corinth,New Albany,2025,2025-09-05,true,true,W,28,14
New Albany,Corinth,2025,2025-09-05,true,true,L,14,28
Corinth,Pontotoc,2025,2025-10-17,false,true,,,
`
	games, err := ReadGames(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadGames: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}

	final := games[0]
	if !final.IsFinal || !final.IsRegion || final.Result != model.ResultWin || final.PointsFor != 28 {
		t.Errorf("final game misread: %+v", final)
	}

	scheduled := games[2]
	if scheduled.IsFinal {
		t.Errorf("scheduled game marked final: %+v", scheduled)
	}
	if scheduled.Result != "" || scheduled.PointsFor != 0 {
		t.Errorf("scheduled game should carry no result: %+v", scheduled)
	}
}

func TestReadGames_LowercaseResult(t *testing.T) {
	csv := `school,opponent,season,date,final,region_game,result,points_for,points_against
Corinth,New Albany,2025,,1,1,w,28,14
`
	games, err := ReadGames(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadGames: %v", err)
	}
	if games[0].Result != model.ResultWin {
		t.Errorf("result not normalized: %q", games[0].Result)
	}
}

func TestReadGames_BadResult(t *testing.T) {
	csv := `school,opponent,season,date,final,region_game,result,points_for,points_against
Corinth,New Albany,2025,,true,true,Q,28,14
`
	if _, err := ReadGames(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for unknown result")
	}
}

func TestReadGames_BadBool(t *testing.T) {
	csv := `school,opponent,season,date,final,region_game,result,points_for,points_against
Corinth,New Albany,2025,,maybe,true,W,28,14
`
	if _, err := ReadGames(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for bad final flag")
	}
}
