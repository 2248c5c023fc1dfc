package roster

import (
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/team"
)

// Result is the normalized roster ready to be written.
type Result struct {
	Leagues    []league.League
	Teams      []team.Team
	Players    []player.Player
	Projection Projection
}

// Normalize factors leagues and teams out of the source rows. Ids follow first
// occurrence in the file, so identical input always yields identical ids.
func Normalize(src SourceTable) (Result, error) {
	proj, err := NewProjection(src)
	if err != nil {
		return Result{}, err
	}

	leagues, leagueIDs := extractLeagues(src, proj)
	teams, teamIDs, err := extractTeams(src, proj, leagueIDs)
	if err != nil {
		return Result{}, err
	}

	players := make([]player.Player, 0, len(src.Records))
	for i, rec := range src.Records {
		p := player.Player{
			ID:         int64(i + 1),
			Attributes: proj.Attributes(rec),
		}
		if id, ok := teamIDs[cell(rec, proj.TeamIndex)]; ok {
			p.TeamID = &id
		}
		players = append(players, p)
	}

	return Result{
		Leagues:    leagues,
		Teams:      teams,
		Players:    players,
		Projection: proj,
	}, nil
}

func extractLeagues(src SourceTable, proj Projection) ([]league.League, map[string]int64) {
	ids := make(map[string]int64)
	var leagues []league.League
	for _, rec := range src.Records {
		name := cell(rec, proj.LeagueIndex)
		if !Present(name) {
			continue
		}
		if _, ok := ids[name]; ok {
			continue
		}
		id := int64(len(leagues) + 1)
		ids[name] = id
		leagues = append(leagues, league.League{ID: id, Name: name})
	}
	return leagues, ids
}

type teamKey struct {
	team   string
	league string
}

// extractTeams returns the teams and a name index where the first id
// registered under a name wins.
func extractTeams(src SourceTable, proj Projection, leagueIDs map[string]int64) ([]team.Team, map[string]int64, error) {
	seen := make(map[teamKey]struct{})
	byName := make(map[string]int64)
	var teams []team.Team
	for _, rec := range src.Records {
		name := cell(rec, proj.TeamIndex)
		if !Present(name) {
			continue
		}
		leagueName := cell(rec, proj.LeagueIndex)
		key := teamKey{team: name, league: leagueName}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		leagueID, ok := leagueIDs[leagueName]
		if !ok {
			return nil, nil, errors.Wrapf(ErrIntegrity, "row %d: team %q references unknown league %q", rec.Row, name, leagueName)
		}

		id := int64(len(teams) + 1)
		teams = append(teams, team.Team{ID: id, LeagueID: leagueID, Name: name})
		if _, ok := byName[name]; !ok {
			byName[name] = id
		}
	}
	return teams, byName, nil
}

func cell(rec Record, idx int) string {
	if idx < 0 || idx >= len(rec.Values) {
		return ""
	}
	return rec.Values[idx]
}

// FreeAgents counts players without a team.
func (r Result) FreeAgents() int {
	n := 0
	for _, p := range r.Players {
		if p.TeamID == nil {
			n++
		}
	}
	return n
}
