package player

import "context"

// Repository describes read access to players from use cases.
type Repository interface {
	Columns(ctx context.Context) ([]string, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	CountByTeam(ctx context.Context) (map[int64]int, error)
}
