package roster

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func table(header []string, rows ...[]string) SourceTable {
	src := SourceTable{Header: header}
	for i, values := range rows {
		src.Records = append(src.Records, Record{Row: i + 1, Line: i + 2, Values: values})
	}
	return src
}

func TestNormalize_SharesTeamAcrossPlayers(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"Messi", "FC X", "La Liga"},
		[]string{"Ronaldo", "FC Y", "Serie A"},
		[]string{"Neymar", "FC X", "La Liga"},
	)

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got.Leagues) != 2 || len(got.Teams) != 2 || len(got.Players) != 3 {
		t.Fatalf("unexpected sizes: leagues=%d teams=%d players=%d", len(got.Leagues), len(got.Teams), len(got.Players))
	}

	messi, neymar := got.Players[0], got.Players[2]
	if messi.TeamID == nil || neymar.TeamID == nil || *messi.TeamID != *neymar.TeamID {
		t.Fatalf("messi and neymar must share a team id: %v %v", messi.TeamID, neymar.TeamID)
	}

	fcx := got.Teams[*messi.TeamID-1]
	if fcx.Name != "FC X" {
		t.Fatalf("unexpected team: %+v", fcx)
	}
	laLiga := got.Leagues[fcx.LeagueID-1]
	if laLiga.Name != "La Liga" {
		t.Fatalf("FC X must belong to La Liga, got %+v", laLiga)
	}
}

func TestNormalize_FirstOccurrenceIDs(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"a", "Lyon", "Ligue 1"},
		[]string{"b", "Inter", "Serie A"},
		[]string{"c", "PSG", "Ligue 1"},
		[]string{"d", "Lyon", "Ligue 1"},
	)

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	wantLeagues := []string{"Ligue 1", "Serie A"}
	for i, name := range wantLeagues {
		if got.Leagues[i].ID != int64(i+1) || got.Leagues[i].Name != name {
			t.Fatalf("league %d: got %+v, want id=%d name=%s", i, got.Leagues[i], i+1, name)
		}
	}
	wantTeams := []struct {
		name     string
		leagueID int64
	}{{"Lyon", 1}, {"Inter", 2}, {"PSG", 1}}
	for i, want := range wantTeams {
		tm := got.Teams[i]
		if tm.ID != int64(i+1) || tm.Name != want.name || tm.LeagueID != want.leagueID {
			t.Fatalf("team %d: got %+v, want %+v", i, tm, want)
		}
	}
	for i, p := range got.Players {
		if p.ID != int64(i+1) {
			t.Fatalf("player %d has id %d", i, p.ID)
		}
	}
}

func TestNormalize_EmptyTeamYieldsNullTeamID(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"Messi", "FC X", "La Liga"},
		[]string{"Free Agent", "", ""},
	)

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Players[1].TeamID != nil {
		t.Fatalf("expected nil team id, got %d", *got.Players[1].TeamID)
	}
	if len(got.Leagues) != 1 || len(got.Teams) != 1 {
		t.Fatalf("empty cells must not create leagues or teams: %+v %+v", got.Leagues, got.Teams)
	}
	if n := got.FreeAgents(); n != 1 {
		t.Fatalf("expected 1 free agent, got %d", n)
	}
}

func TestNormalize_TeamWithoutLeagueIsIntegrityError(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"Messi", "FC X", ""},
	)

	_, err := Normalize(src)
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestNormalize_DuplicateTeamNameAcrossLeagues(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"a", "United", "Premier League"},
		[]string{"b", "United", "MLS"},
	)

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("each (team, league) pair is its own team, got %d", len(got.Teams))
	}
	if *got.Players[0].TeamID != 1 || *got.Players[1].TeamID != 1 {
		t.Fatalf("name lookup resolves to the first team registered under the name")
	}
}

func TestNormalize_ProjectsAttributes(t *testing.T) {
	src := table([]string{"Name", "League", "Age", "Rating", "Team", "Foot"},
		[]string{"Messi", "La Liga", "36", "9.5", "FC X", "Left"},
		[]string{"Neymar", "La Liga", "", "9", "FC X", ""},
	)

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	names := got.Projection.ColumnNames()
	want := []string{"Name", "Age", "Rating", "Foot"}
	if len(names) != len(want) {
		t.Fatalf("unexpected columns: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected columns: %v", names)
		}
	}

	affinities := map[string]Affinity{}
	for _, c := range got.Projection.Columns {
		affinities[c.Name] = c.Affinity
	}
	if affinities["Age"] != AffinityInteger || affinities["Rating"] != AffinityReal || affinities["Name"] != AffinityText {
		t.Fatalf("unexpected affinities: %v", affinities)
	}

	messi := got.Players[0]
	if v, _ := messi.Attribute("Age"); v != int64(36) {
		t.Fatalf("unexpected age: %#v", v)
	}
	if v, _ := messi.Attribute("Rating"); v != 9.5 {
		t.Fatalf("unexpected rating: %#v", v)
	}
	neymar := got.Players[1]
	if v, _ := neymar.Attribute("Age"); v != nil {
		t.Fatalf("empty cell must be NULL, got %#v", v)
	}
	if v, _ := neymar.Attribute("Rating"); v != 9.0 {
		t.Fatalf("integers in a REAL column convert to float, got %#v", v)
	}
	if _, ok := neymar.Attribute("League"); ok {
		t.Fatalf("League must not be projected")
	}
}

func TestNewProjection_HeaderValidation(t *testing.T) {
	tests := []struct {
		name   string
		header []string
	}{
		{name: "missing league", header: []string{"Name", "Team"}},
		{name: "missing team", header: []string{"Name", "League"}},
		{name: "id collides", header: []string{"ID", "Team", "League"}},
		{name: "team_id collides", header: []string{"team_id", "Team", "League"}},
		{name: "duplicate ignoring case", header: []string{"Name", "name", "Team", "League"}},
		{name: "empty name", header: []string{"", "Team", "League"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProjection(SourceTable{Header: tc.header})
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestInferAffinity_RejectsNamedFloats(t *testing.T) {
	src := table([]string{"Nick", "Team", "League"},
		[]string{"Inf", "A", "L"},
		[]string{"1", "A", "L"},
	)

	proj, err := NewProjection(src)
	if err != nil {
		t.Fatalf("projection: %v", err)
	}
	if proj.Columns[0].Affinity != AffinityText {
		t.Fatalf("expected TEXT, got %s", proj.Columns[0].Affinity)
	}
}

func TestResult_FingerprintIsStable(t *testing.T) {
	src := table([]string{"Name", "Team", "League"},
		[]string{"Messi", "FC X", "La Liga"},
		[]string{"Ronaldo", "FC Y", "Serie A"},
	)

	first, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	second, err := Normalize(src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if first.Fingerprint() != second.Fingerprint() {
		t.Fatalf("fingerprint must be stable across runs")
	}

	swapped := table([]string{"Name", "Team", "League"},
		[]string{"Ronaldo", "FC Y", "Serie A"},
		[]string{"Messi", "FC X", "La Liga"},
	)
	third, err := Normalize(swapped)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if third.Fingerprint() == first.Fingerprint() {
		t.Fatalf("different id assignment must change the fingerprint")
	}
}

func TestSourceTable_LeagueNames(t *testing.T) {
	src := table([]string{"Team", "League"},
		[]string{"A", "Serie A"},
		[]string{"B", ""},
		[]string{"C", "Serie A"},
		[]string{"D", "Eredivisie"},
	)

	names, ok := src.LeagueNames()
	if !ok {
		t.Fatalf("expected League column")
	}
	if len(names) != 2 || names[0] != "Serie A" || names[1] != "Eredivisie" {
		t.Fatalf("unexpected names: %v", names)
	}

	if _, ok := (SourceTable{Header: []string{"Team"}}).LeagueNames(); ok {
		t.Fatalf("expected missing League column to be reported")
	}
}
