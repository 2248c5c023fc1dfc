package sqlite

import (
	"fmt"

	"github.com/riskibarqy/club-manager/internal/domain/roster"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

// createTableStatements renders the three staging tables. Foreign keys point at
// the staging parents; SQLite rewrites them when the tables are renamed.
func createTableStatements(proj roster.Projection) ([]string, error) {
	leagues, err := qb.CreateTable(stagingName(TableLeagues)).
		Column(qb.ColumnDef{Name: "id", Type: "INTEGER", PrimaryKey: true}).
		Column(qb.ColumnDef{Name: "name", Type: "TEXT", NotNull: true, Unique: true}).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build leagues ddl: %w", err)
	}

	teams, err := qb.CreateTable(stagingName(TableTeams)).
		Column(qb.ColumnDef{Name: "id", Type: "INTEGER", PrimaryKey: true}).
		Column(qb.ColumnDef{Name: "name", Type: "TEXT", NotNull: true}).
		Column(qb.ColumnDef{
			Name:       "league_id",
			Type:       "INTEGER",
			NotNull:    true,
			References: &qb.ForeignKey{Table: stagingName(TableLeagues), Column: "id"},
		}).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build teams ddl: %w", err)
	}

	playersBuilder := qb.CreateTable(stagingName(TablePlayers)).
		Column(qb.ColumnDef{Name: roster.ColumnID, Type: "INTEGER", PrimaryKey: true})
	for _, c := range proj.Columns {
		playersBuilder.Column(qb.ColumnDef{Name: c.Name, Type: string(c.Affinity)})
	}
	playersBuilder.Column(qb.ColumnDef{
		Name:       roster.ColumnTeamID,
		Type:       "INTEGER",
		References: &qb.ForeignKey{Table: stagingName(TableTeams), Column: "id"},
	})
	players, err := playersBuilder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build players ddl: %w", err)
	}

	return []string{leagues, teams, players}, nil
}
