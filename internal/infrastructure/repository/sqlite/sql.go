package sqlite

import (
	"database/sql"
	"errors"
)

// Final table names; the writer builds each under stagingName first.
const (
	TableLeagues = "leagues"
	TableTeams   = "teams"
	TablePlayers = "players"
)

const stagingSuffix = "_staging"

// Tables lists the managed tables parents first.
var Tables = []string{TableLeagues, TableTeams, TablePlayers}

func stagingName(table string) string {
	return table + stagingSuffix
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// nullableInt64 converts a driver value to *int64; non-integers are treated as absent.
func nullableInt64(v any) *int64 {
	switch n := v.(type) {
	case int64:
		return &n
	case int:
		out := int64(n)
		return &out
	default:
		return nil
	}
}

// attributeValue maps driver output onto player attribute values.
func attributeValue(v any) any {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case int:
		return int64(value)
	case float32:
		return float64(value)
	case bool:
		if value {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}
