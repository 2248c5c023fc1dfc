package roster

import "strings"

// Source column names the normalizer factors out of the player rows.
const (
	ColumnLeague = "League"
	ColumnTeam   = "Team"
)

// SourceTable is the loaded CSV: a header plus records in file order.
type SourceTable struct {
	Header  []string
	Records []Record
}

// Record is one data row. Row is the 1-based data-row ordinal, Line the physical
// line it started on.
type Record struct {
	Row    int
	Line   int
	Values []string
}

// Index returns the position of an exact header name, or -1.
func (t SourceTable) Index(column string) int {
	for i, name := range t.Header {
		if name == column {
			return i
		}
	}
	return -1
}

// Present reports whether a League/Team cell names something. Empty cells are
// absent.
func Present(value string) bool {
	return strings.TrimSpace(value) != ""
}

// LeagueNames returns the distinct present League values in first-occurrence
// order. It reports false when the table has no League column.
func (t SourceTable) LeagueNames() ([]string, bool) {
	idx := t.Index(ColumnLeague)
	if idx < 0 {
		return nil, false
	}

	seen := make(map[string]struct{})
	var names []string
	for _, rec := range t.Records {
		if idx >= len(rec.Values) {
			continue
		}
		name := rec.Values[idx]
		if !Present(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, true
}
