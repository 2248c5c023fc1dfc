package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

// Inspector answers the schema and content questions asked by verification. It
// only reads, and knows nothing about how the tables were written.
type Inspector struct {
	db *sqlx.DB
}

func NewInspector(db *sqlx.DB) *Inspector {
	return &Inspector{db: db}
}

func (i *Inspector) TableNames(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("name").
		From("sqlite_master").
		Where(qb.EqLiteral("type", "table")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tables query: %w", err)
	}

	var names []string
	if err := i.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

func (i *Inspector) ColumnNames(ctx context.Context, table string) ([]string, error) {
	query, args, err := qb.Select("name").
		From("pragma_table_info(?)").
		OrderBy("cid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build table info query: %w", err)
	}
	args = append(args, table)

	var names []string
	if err := i.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	return names, nil
}

func (i *Inspector) CountRows(ctx context.Context, table string) (int64, error) {
	query, args, err := qb.Select("COUNT(*)").From(qb.QuoteIdent(table)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", table, err)
	}

	var count int64
	if err := i.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// DistinctText returns the distinct non-NULL values of a column.
func (i *Inspector) DistinctText(ctx context.Context, table, column string) ([]string, error) {
	col := qb.QuoteIdent(column)
	query, args, err := qb.SelectDistinct(col).
		From(qb.QuoteIdent(table)).
		Where(qb.IsNotNull(col)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build distinct %s.%s query: %w", table, column, err)
	}

	var values []string
	if err := i.db.SelectContext(ctx, &values, query, args...); err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", table, column, err)
	}
	return values, nil
}

// DistinctInt64 returns the distinct non-NULL values of an integer column and
// whether any row holds NULL.
func (i *Inspector) DistinctInt64(ctx context.Context, table, column string) ([]int64, bool, error) {
	col := qb.QuoteIdent(column)
	query, args, err := qb.SelectDistinct(col).From(qb.QuoteIdent(table)).ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build distinct %s.%s query: %w", table, column, err)
	}

	var rows []sql.NullInt64
	if err := i.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, false, fmt.Errorf("distinct %s.%s: %w", table, column, err)
	}

	values := make([]int64, 0, len(rows))
	hasNull := false
	for _, v := range rows {
		if !v.Valid {
			hasNull = true
			continue
		}
		values = append(values, v.Int64)
	}
	return values, hasNull, nil
}
