package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db        *sqlx.DB
	inspector *Inspector
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db, inspector: NewInspector(db)}
}

// Columns lists the attribute columns of the players table in table order.
func (r *PlayerRepository) Columns(ctx context.Context) ([]string, error) {
	names, err := r.inspector.ColumnNames(ctx, TablePlayers)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case roster.ColumnID, roster.ColumnTeamID:
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("*").From(TablePlayers).
		Where(qb.Eq(roster.ColumnTeamID, teamID)).
		OrderBy(roster.ColumnID).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (r *PlayerRepository) CountByTeam(ctx context.Context) (map[int64]int, error) {
	query, args, err := qb.Select(roster.ColumnTeamID, "COUNT(*) AS squad_size").From(TablePlayers).
		Where(qb.IsNotNull(roster.ColumnTeamID)).
		GroupBy(roster.ColumnTeamID).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count players by team query: %w", err)
	}

	var rows []squadCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count players by team: %w", err)
	}

	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.TeamID] = row.Count
	}
	return out, nil
}
