package querybuilder

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// QuoteIdent double-quotes an identifier. SQLite and Postgres share the rule, so
// the pq helper is reused rather than re-implemented.
func QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

func QuoteIdents(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, QuoteIdent(name))
	}
	return out
}

// ForeignKey points a column at table(column).
type ForeignKey struct {
	Table  string
	Column string
}

type ColumnDef struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	Unique     bool
	References *ForeignKey
}

type CreateTableBuilder struct {
	table   string
	columns []ColumnDef
}

func CreateTable(table string) *CreateTableBuilder {
	return &CreateTableBuilder{table: table}
}

func (b *CreateTableBuilder) Column(def ColumnDef) *CreateTableBuilder {
	b.columns = append(b.columns, def)
	return b
}

// ToSQL renders column constraints first and FOREIGN KEY table constraints last,
// so sqlite_master keeps a stable shape for a given definition.
func (b *CreateTableBuilder) ToSQL() (string, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", fmt.Errorf("create table name is required")
	}
	if len(b.columns) == 0 {
		return "", fmt.Errorf("create table %s: at least one column is required", b.table)
	}

	seen := make(map[string]struct{}, len(b.columns))
	defs := make([]string, 0, len(b.columns))
	var fks []string
	for _, c := range b.columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("create table %s: column with empty name", b.table)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return "", fmt.Errorf("create table %s: duplicate column %q", b.table, name)
		}
		seen[key] = struct{}{}

		var sb strings.Builder
		sb.WriteString(QuoteIdent(name))
		if typ := strings.TrimSpace(c.Type); typ != "" {
			sb.WriteByte(' ')
			sb.WriteString(typ)
		}
		if c.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		if c.Unique {
			sb.WriteString(" UNIQUE")
		}
		defs = append(defs, sb.String())

		if c.References != nil {
			fks = append(fks, fmt.Sprintf("FOREIGN KEY(%s) REFERENCES %s(%s)",
				QuoteIdent(name), QuoteIdent(c.References.Table), QuoteIdent(c.References.Column)))
		}
	}

	defs = append(defs, fks...)
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", QuoteIdent(b.table), strings.Join(defs, ",\n  ")), nil
}

func DropTableIfExists(table string) string {
	return "DROP TABLE IF EXISTS " + QuoteIdent(table)
}

func RenameTable(from, to string) string {
	return "ALTER TABLE " + QuoteIdent(from) + " RENAME TO " + QuoteIdent(to)
}
