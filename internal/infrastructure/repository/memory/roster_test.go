package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/club-manager/internal/domain/roster"
)

func TestFromRoster(t *testing.T) {
	ctx := context.Background()
	src := roster.SourceTable{
		Header: []string{"Name", "Team", "League"},
		Records: []roster.Record{
			{Row: 1, Values: []string{"Messi", "FC X", "La Liga"}},
			{Row: 2, Values: []string{"Ronaldo", "FC Y", "Serie A"}},
			{Row: 3, Values: []string{"Neymar", "FC X", "La Liga"}},
			{Row: 4, Values: []string{"Nobody", "", ""}},
		},
	}
	result, err := roster.Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	repos := FromRoster(result)

	leagues, err := repos.Leagues.List(ctx)
	if err != nil || len(leagues) != 2 {
		t.Fatalf("unexpected leagues: %+v err=%v", leagues, err)
	}
	if _, found, _ := repos.Leagues.GetByID(ctx, 3); found {
		t.Fatalf("league 3 must not exist")
	}

	teams, err := repos.Teams.ListByLeague(ctx, leagues[0].ID)
	if err != nil || len(teams) != 1 || teams[0].Name != "FC X" {
		t.Fatalf("unexpected teams: %+v err=%v", teams, err)
	}

	squad, err := repos.Players.ListByTeam(ctx, teams[0].ID)
	if err != nil || len(squad) != 2 {
		t.Fatalf("unexpected squad: %+v err=%v", squad, err)
	}

	counts, _ := repos.Players.CountByTeam(ctx)
	if counts[teams[0].ID] != 2 || len(counts) != 2 {
		t.Fatalf("free agents must not be counted: %v", counts)
	}

	columns, _ := repos.Players.Columns(ctx)
	if len(columns) != 1 || columns[0] != "Name" {
		t.Fatalf("unexpected columns: %v", columns)
	}
}
