package sqlite

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

// RosterWriter replaces the leagues, teams and players tables with a
// normalized roster. Prior contents are discarded with no backup.
type RosterWriter struct {
	db *sqlx.DB
}

func NewRosterWriter(db *sqlx.DB) *RosterWriter {
	return &RosterWriter{db: db}
}

// Replace builds the new tables under staging names, checks them, then drops
// the old tables and renames the staging ones, all in one transaction. Any
// error rolls back and leaves the previous tables untouched.
func (w *RosterWriter) Replace(ctx context.Context, result roster.Result) error {
	if err := validateRoster(result); err != nil {
		return err
	}

	ddl, err := createTableStatements(result.Projection)
	if err != nil {
		return err
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, qb.DropTableIfExists(stagingName(table))); err != nil {
			return fmt.Errorf("drop leftover %s: %w", stagingName(table), err)
		}
	}
	for i, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", stagingName(Tables[i]), err)
		}
	}

	if err := insertLeagues(ctx, tx, result); err != nil {
		return err
	}
	if err := insertTeams(ctx, tx, result); err != nil {
		return err
	}
	if err := insertPlayers(ctx, tx, result); err != nil {
		return err
	}
	if err := checkStaging(ctx, tx, result); err != nil {
		return err
	}

	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, qb.DropTableIfExists(Tables[i])); err != nil {
			return fmt.Errorf("drop %s: %w", Tables[i], err)
		}
	}
	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, qb.RenameTable(stagingName(table), table)); err != nil {
			return fmt.Errorf("rename %s: %w", stagingName(table), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster tx: %w", err)
	}

	return nil
}

func validateRoster(result roster.Result) error {
	for _, row := range result.Leagues {
		if err := row.Validate(); err != nil {
			return errors.Wrapf(roster.ErrIntegrity, "league %d: %v", row.ID, err)
		}
	}
	for _, row := range result.Teams {
		if err := row.Validate(); err != nil {
			return errors.Wrapf(roster.ErrIntegrity, "team %d: %v", row.ID, err)
		}
	}
	for _, row := range result.Players {
		if err := row.Validate(); err != nil {
			return errors.Wrapf(roster.ErrIntegrity, "player %d: %v", row.ID, err)
		}
	}
	return nil
}

func insertLeagues(ctx context.Context, tx *sqlx.Tx, result roster.Result) error {
	rows := make([]any, 0, len(result.Leagues))
	for _, l := range result.Leagues {
		rows = append(rows, leagueTableModel{ID: l.ID, Name: l.Name})
	}
	return insertModels(ctx, tx, stagingName(TableLeagues), rows)
}

func insertTeams(ctx context.Context, tx *sqlx.Tx, result roster.Result) error {
	rows := make([]any, 0, len(result.Teams))
	for _, t := range result.Teams {
		rows = append(rows, teamTableModel{ID: t.ID, Name: t.Name, LeagueID: t.LeagueID})
	}
	return insertModels(ctx, tx, stagingName(TableTeams), rows)
}

// insertModels prepares one INSERT from the first model's db tags and executes
// it for every model.
func insertModels(ctx context.Context, tx *sqlx.Tx, table string, models []any) error {
	if len(models) == 0 {
		return nil
	}

	columns, _, err := qb.ModelColumns(models[0])
	if err != nil {
		return fmt.Errorf("read %s model columns: %w", table, err)
	}

	stmt, err := prepareInsert(ctx, tx, table, columns)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, model := range models {
		_, values, err := qb.ModelColumns(model)
		if err != nil {
			return fmt.Errorf("read %s model values: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	return nil
}

func insertPlayers(ctx context.Context, tx *sqlx.Tx, result roster.Result) error {
	if len(result.Players) == 0 {
		return nil
	}

	columns := make([]string, 0, len(result.Projection.Columns)+2)
	columns = append(columns, roster.ColumnID)
	columns = append(columns, result.Projection.ColumnNames()...)
	columns = append(columns, roster.ColumnTeamID)

	table := stagingName(TablePlayers)
	stmt, err := prepareInsert(ctx, tx, table, columns)
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := make([]any, len(columns))
	for _, p := range result.Players {
		if len(p.Attributes) != len(result.Projection.Columns) {
			return errors.Wrapf(roster.ErrIntegrity, "player %d has %d attributes, expected %d", p.ID, len(p.Attributes), len(result.Projection.Columns))
		}
		values[0] = p.ID
		for i, attr := range p.Attributes {
			values[i+1] = attr.Value
		}
		if p.TeamID != nil {
			values[len(values)-1] = *p.TeamID
		} else {
			values[len(values)-1] = nil
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert player %d: %w", p.ID, err)
		}
	}

	return nil
}

func prepareInsert(ctx context.Context, tx *sqlx.Tx, table string, columns []string) (*sqlx.Stmt, error) {
	placeholders := make([]any, len(columns))
	query, _, err := qb.InsertInto(qb.QuoteIdent(table)).
		Columns(qb.QuoteIdents(columns...)...).
		Values(placeholders...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert %s query: %w", table, err)
	}

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare insert %s: %w", table, err)
	}
	return stmt, nil
}

type foreignKeyViolation struct {
	Table  string `db:"table"`
	RowID  *int64 `db:"rowid"`
	Parent string `db:"parent"`
	FKID   int64  `db:"fkid"`
}

// checkStaging confirms the staging tables hold exactly the normalized rows and
// that no foreign key dangles before anything destructive happens.
func checkStaging(ctx context.Context, tx *sqlx.Tx, result roster.Result) error {
	want := map[string]int{
		TableLeagues: len(result.Leagues),
		TableTeams:   len(result.Teams),
		TablePlayers: len(result.Players),
	}
	for _, table := range Tables {
		query, args, err := qb.Select("COUNT(*)").From(qb.QuoteIdent(stagingName(table))).ToSQL()
		if err != nil {
			return fmt.Errorf("build count %s query: %w", stagingName(table), err)
		}
		var got int
		if err := tx.GetContext(ctx, &got, query, args...); err != nil {
			return fmt.Errorf("count %s: %w", stagingName(table), err)
		}
		if got != want[table] {
			return errors.Wrapf(roster.ErrIntegrity, "%s holds %d rows, expected %d", stagingName(table), got, want[table])
		}
	}

	var violations []foreignKeyViolation
	for _, table := range []string{TableTeams, TablePlayers} {
		var found []foreignKeyViolation
		query := "PRAGMA foreign_key_check(" + qb.QuoteIdent(stagingName(table)) + ")"
		if err := tx.SelectContext(ctx, &found, query); err != nil {
			return fmt.Errorf("foreign key check %s: %w", stagingName(table), err)
		}
		violations = append(violations, found...)
	}
	if len(violations) > 0 {
		v := violations[0]
		rowID := int64(0)
		if v.RowID != nil {
			rowID = *v.RowID
		}
		return errors.Wrapf(roster.ErrIntegrity, "%d foreign key violations, first in %s row %d referencing %s",
			len(violations), v.Table, rowID, v.Parent)
	}

	return nil
}
