package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
)

func openTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.db")
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func normalized(t *testing.T, header []string, rows ...[]string) roster.Result {
	t.Helper()
	src := roster.SourceTable{Header: header}
	for i, values := range rows {
		src.Records = append(src.Records, roster.Record{Row: i + 1, Line: i + 2, Values: values})
	}
	result, err := roster.Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return result
}

func sampleRoster(t *testing.T) roster.Result {
	return normalized(t, []string{"Name", "Age", "Team", "League"},
		[]string{"Messi", "36", "FC X", "La Liga"},
		[]string{"Ronaldo", "38", "FC Y", "Serie A"},
		[]string{"Neymar", "31", "FC X", "La Liga"},
		[]string{"Free Agent", "", "", ""},
	)
}

func TestRosterWriter_Replace(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)

	if err := NewRosterWriter(db).Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	inspector := NewInspector(db)
	tables, err := inspector.TableNames(ctx)
	if err != nil {
		t.Fatalf("table names: %v", err)
	}
	if strings.Join(tables, ",") != "leagues,players,teams" {
		t.Fatalf("unexpected tables: %v", tables)
	}

	columns, err := inspector.ColumnNames(ctx, TablePlayers)
	if err != nil {
		t.Fatalf("column names: %v", err)
	}
	if strings.Join(columns, ",") != "id,Name,Age,team_id" {
		t.Fatalf("unexpected players columns: %v", columns)
	}

	for table, want := range map[string]int64{TableLeagues: 2, TableTeams: 2, TablePlayers: 4} {
		got, err := inspector.CountRows(ctx, table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("%s: got %d rows, want %d", table, got, want)
		}
	}

	teamIDs, hasNull, err := inspector.DistinctInt64(ctx, TablePlayers, "team_id")
	if err != nil {
		t.Fatalf("distinct team ids: %v", err)
	}
	if !hasNull || len(teamIDs) != 2 {
		t.Fatalf("unexpected team ids: %v null=%v", teamIDs, hasNull)
	}
}

func TestRosterWriter_ForeignKeysFollowRename(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)

	if err := NewRosterWriter(db).Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	var fks []struct {
		Table string `db:"table"`
		From  string `db:"from"`
		To    string `db:"to"`
	}
	if err := db.SelectContext(ctx, &fks, `SELECT "table", "from", "to" FROM pragma_foreign_key_list('players')`); err != nil {
		t.Fatalf("foreign key list: %v", err)
	}
	if len(fks) != 1 || fks[0].Table != TableTeams || fks[0].From != "team_id" || fks[0].To != "id" {
		t.Fatalf("players must reference teams(id), got %+v", fks)
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO teams (id, name, league_id) VALUES (99, 'Ghost', 42)`); err == nil {
		t.Fatalf("expected foreign key violation on teams.league_id")
	}
}

func TestRosterWriter_ReplaceTwiceIsIdentical(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	writer := NewRosterWriter(db)
	leagues := NewLeagueRepository(db)
	teams := NewTeamRepository(db)

	if err := writer.Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	firstLeagues, _ := leagues.List(ctx)
	firstTeams, _ := teams.List(ctx)

	if err := writer.Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	secondLeagues, _ := leagues.List(ctx)
	secondTeams, _ := teams.List(ctx)

	if len(firstLeagues) != len(secondLeagues) || len(firstTeams) != len(secondTeams) {
		t.Fatalf("row counts changed between runs")
	}
	for i := range firstLeagues {
		if firstLeagues[i] != secondLeagues[i] {
			t.Fatalf("league %d changed: %+v vs %+v", i, firstLeagues[i], secondLeagues[i])
		}
	}
	for i := range firstTeams {
		if firstTeams[i] != secondTeams[i] {
			t.Fatalf("team %d changed: %+v vs %+v", i, firstTeams[i], secondTeams[i])
		}
	}
}

func TestRosterWriter_FailureKeepsPreviousTables(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	writer := NewRosterWriter(db)

	if err := writer.Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	broken := normalized(t, []string{"Name", "Team", "League"},
		[]string{"Zidane", "Real", "La Liga"},
	)
	ghost := int64(99)
	broken.Players[0].TeamID = &ghost

	if err := writer.Replace(ctx, broken); err == nil {
		t.Fatalf("expected dangling team id to fail the rebuild")
	}

	inspector := NewInspector(db)
	tables, err := inspector.TableNames(ctx)
	if err != nil {
		t.Fatalf("table names: %v", err)
	}
	if strings.Join(tables, ",") != "leagues,players,teams" {
		t.Fatalf("staging tables must not survive a failed run: %v", tables)
	}
	count, err := inspector.CountRows(ctx, TablePlayers)
	if err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 4 {
		t.Fatalf("previous players must be intact, got %d rows", count)
	}
	columns, _ := inspector.ColumnNames(ctx, TablePlayers)
	if strings.Join(columns, ",") != "id,Name,Age,team_id" {
		t.Fatalf("previous players schema must be intact: %v", columns)
	}
}

func TestRosterWriter_AttributeCountMismatch(t *testing.T) {
	db, _ := openTestDB(t)
	result := sampleRoster(t)
	result.Players[0].Attributes = result.Players[0].Attributes[:1]

	err := NewRosterWriter(db).Replace(context.Background(), result)
	if !errors.Is(err, roster.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestRosterWriter_RejectsInvalidRowsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	writer := NewRosterWriter(db)

	if err := writer.Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*roster.Result)
	}{
		{
			name:   "empty league name",
			mutate: func(r *roster.Result) { r.Leagues[0].Name = "" },
		},
		{
			name:   "empty team name",
			mutate: func(r *roster.Result) { r.Teams[0].Name = "" },
		},
		{
			name:   "non-positive player id",
			mutate: func(r *roster.Result) { r.Players[0].ID = 0 },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := sampleRoster(t)
			tc.mutate(&result)

			err := writer.Replace(ctx, result)
			if !errors.Is(err, roster.ErrIntegrity) {
				t.Fatalf("expected ErrIntegrity, got %v", err)
			}

			var blank int
			if err := db.GetContext(ctx, &blank, `SELECT COUNT(*) FROM leagues WHERE name = ''`); err != nil {
				t.Fatalf("count blank leagues: %v", err)
			}
			if blank != 0 {
				t.Fatalf("invalid rows must not be written, found %d blank leagues", blank)
			}
			count, err := NewInspector(db).CountRows(ctx, TablePlayers)
			if err != nil {
				t.Fatalf("count players: %v", err)
			}
			if count != 4 {
				t.Fatalf("previous players must be intact, got %d rows", count)
			}
		})
	}
}

func TestRosterWriter_ReplacesFlatTable(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)

	for _, stmt := range []string{
		`CREATE TABLE players ("Name" TEXT, "Team" TEXT, "League" TEXT)`,
		`INSERT INTO players VALUES ('Old', 'Old FC', 'Old League')`,
		`CREATE TABLE players_staging (junk TEXT)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("seed legacy schema: %v", err)
		}
	}

	if err := NewRosterWriter(db).Replace(ctx, sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	columns, err := NewInspector(db).ColumnNames(ctx, TablePlayers)
	if err != nil {
		t.Fatalf("column names: %v", err)
	}
	for _, c := range columns {
		if c == roster.ColumnLeague || c == roster.ColumnTeam {
			t.Fatalf("players must not keep %s: %v", c, columns)
		}
	}
}
