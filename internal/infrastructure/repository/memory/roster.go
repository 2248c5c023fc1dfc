package memory

import (
	"github.com/riskibarqy/club-manager/internal/domain/roster"
)

// Repositories serves a normalized roster straight from memory, for previewing
// a CSV before it is migrated.
type Repositories struct {
	Leagues *LeagueRepository
	Teams   *TeamRepository
	Players *PlayerRepository
}

func FromRoster(result roster.Result) Repositories {
	return Repositories{
		Leagues: NewLeagueRepository(result.Leagues),
		Teams:   NewTeamRepository(result.Teams),
		Players: NewPlayerRepository(result.Projection.ColumnNames(), result.Players),
	}
}
