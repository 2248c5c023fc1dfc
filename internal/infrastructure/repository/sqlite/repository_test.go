package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func seededDB(t *testing.T) (string, func()) {
	t.Helper()
	db, path := openTestDB(t)
	if err := NewRosterWriter(db).Replace(context.Background(), sampleRoster(t)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	return path, func() { _ = db.Close() }
}

func TestRepositories_ReadOnlyHandle(t *testing.T) {
	ctx := context.Background()
	path, closeWriter := seededDB(t)
	closeWriter()

	db, err := Open(ctx, path, ReadOnly())
	if err != nil {
		t.Fatalf("open read-only: %v", err)
	}
	defer db.Close()

	leagues, err := NewLeagueRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(leagues) != 2 || leagues[0].Name != "La Liga" || leagues[1].Name != "Serie A" {
		t.Fatalf("unexpected leagues: %+v", leagues)
	}

	if _, found, err := NewLeagueRepository(db).GetByID(ctx, 42); err != nil || found {
		t.Fatalf("expected missing league, found=%v err=%v", found, err)
	}

	teamRepo := NewTeamRepository(db)
	laLigaTeams, err := teamRepo.ListByLeague(ctx, leagues[0].ID)
	if err != nil {
		t.Fatalf("list teams by league: %v", err)
	}
	if len(laLigaTeams) != 1 || laLigaTeams[0].Name != "FC X" {
		t.Fatalf("unexpected teams: %+v", laLigaTeams)
	}
	fcx, found, err := teamRepo.GetByID(ctx, laLigaTeams[0].ID)
	if err != nil || !found || fcx.LeagueID != leagues[0].ID {
		t.Fatalf("unexpected team lookup: %+v found=%v err=%v", fcx, found, err)
	}

	playerRepo := NewPlayerRepository(db)
	squad, err := playerRepo.ListByTeam(ctx, fcx.ID)
	if err != nil {
		t.Fatalf("list players by team: %v", err)
	}
	if len(squad) != 2 || squad[0].Name() != "Messi" || squad[1].Name() != "Neymar" {
		t.Fatalf("unexpected squad: %+v", squad)
	}
	if age, _ := squad[0].Attribute("Age"); age != int64(36) {
		t.Fatalf("unexpected age: %#v", age)
	}
	if squad[0].TeamID == nil || *squad[0].TeamID != fcx.ID {
		t.Fatalf("unexpected team id: %v", squad[0].TeamID)
	}

	counts, err := playerRepo.CountByTeam(ctx)
	if err != nil {
		t.Fatalf("count by team: %v", err)
	}
	if counts[fcx.ID] != 2 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	columns, err := playerRepo.Columns(ctx)
	if err != nil {
		t.Fatalf("player columns: %v", err)
	}
	if strings.Join(columns, ",") != "Name,Age" {
		t.Fatalf("unexpected columns: %v", columns)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM players`); err == nil {
		t.Fatalf("read-only handle must reject writes")
	}
}

func TestOpen_ReadOnlyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := Open(context.Background(), path, ReadOnly()); err == nil {
		t.Fatalf("expected error opening a missing file read-only")
	}
}

func TestDSN(t *testing.T) {
	got := DSN("data/my#club?.db", true)
	if !strings.HasPrefix(got, "file:data/my%23club%3f.db?") {
		t.Fatalf("path must be escaped: %s", got)
	}
	if !strings.Contains(got, "mode=ro") || strings.Contains(got, "_txlock") {
		t.Fatalf("unexpected read-only dsn: %s", got)
	}
	if !strings.Contains(DSN("game.db", false), "_txlock=immediate") {
		t.Fatalf("read-write dsn must take the write lock at BEGIN")
	}
	if !strings.Contains(got, "foreign_keys(1)") {
		t.Fatalf("foreign keys must be enabled: %s", got)
	}
}

func TestDBNameFromPath(t *testing.T) {
	if got := dbNameFromPath("data/game.db"); got != "game" {
		t.Fatalf("unexpected db name: %q", got)
	}
}
