package team

import "context"

// Repository describes read access to teams from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}
