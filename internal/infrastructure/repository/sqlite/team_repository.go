package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return r.selectTeams(ctx, qb.Select("id", "name", "league_id").From(TableTeams).OrderBy("id"))
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	return r.selectTeams(ctx, qb.Select("id", "name", "league_id").From(TableTeams).
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("id"))
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "name", "league_id").From(TableTeams).
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromModel(row), true, nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, builder *qb.SelectBuilder) ([]team.Team, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromModel(row))
	}
	return out, nil
}

func teamFromModel(row teamTableModel) team.Team {
	return team.Team{ID: row.ID, LeagueID: row.LeagueID, Name: row.Name}
}
