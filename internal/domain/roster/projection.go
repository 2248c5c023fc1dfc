package roster

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/player"
)

// Affinity is the SQLite column affinity inferred for a projected column.
type Affinity string

const (
	AffinityInteger Affinity = "INTEGER"
	AffinityReal    Affinity = "REAL"
	AffinityText    Affinity = "TEXT"
)

// Reserved player column names; source columns may not reuse them.
const (
	ColumnID     = "id"
	ColumnTeamID = "team_id"
)

// Column is one source column kept on the players table.
type Column struct {
	Name        string
	SourceIndex int
	Affinity    Affinity
}

// Projection maps source records onto the players row shape: every column
// except League and Team, in header order.
type Projection struct {
	LeagueIndex int
	TeamIndex   int
	Columns     []Column
}

// NewProjection validates the header and infers each kept column's affinity
// from the records.
func NewProjection(src SourceTable) (Projection, error) {
	p := Projection{LeagueIndex: -1, TeamIndex: -1}
	seen := make(map[string]struct{}, len(src.Header))
	for i, name := range src.Header {
		if strings.TrimSpace(name) == "" {
			return Projection{}, errors.Wrapf(ErrParse, "header column %d is empty", i+1)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return Projection{}, errors.Wrapf(ErrParse, "duplicate header column %q", name)
		}
		seen[key] = struct{}{}

		switch {
		case name == ColumnLeague:
			p.LeagueIndex = i
		case name == ColumnTeam:
			p.TeamIndex = i
		case key == ColumnID || key == ColumnTeamID:
			return Projection{}, errors.Wrapf(ErrParse, "header column %q collides with a generated players column", name)
		default:
			p.Columns = append(p.Columns, Column{Name: name, SourceIndex: i})
		}
	}
	if p.LeagueIndex < 0 {
		return Projection{}, errors.Wrapf(ErrParse, "header has no %q column", ColumnLeague)
	}
	if p.TeamIndex < 0 {
		return Projection{}, errors.Wrapf(ErrParse, "header has no %q column", ColumnTeam)
	}

	for i := range p.Columns {
		p.Columns[i].Affinity = inferAffinity(src.Records, p.Columns[i].SourceIndex)
	}
	return p, nil
}

// ColumnNames lists the projected column names in order.
func (p Projection) ColumnNames() []string {
	out := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		out = append(out, c.Name)
	}
	return out
}

// Attributes converts one record's kept cells to typed values.
func (p Projection) Attributes(rec Record) []player.Attribute {
	out := make([]player.Attribute, 0, len(p.Columns))
	for _, c := range p.Columns {
		var raw string
		if c.SourceIndex < len(rec.Values) {
			raw = rec.Values[c.SourceIndex]
		}
		out = append(out, player.Attribute{Column: c.Name, Value: convert(raw, c.Affinity)})
	}
	return out
}

func inferAffinity(records []Record, idx int) Affinity {
	affinity := AffinityInteger
	seenValue := false
	for _, rec := range records {
		if idx >= len(rec.Values) || rec.Values[idx] == "" {
			continue
		}
		seenValue = true
		v := strings.TrimSpace(rec.Values[idx])
		if affinity == AffinityInteger {
			if _, err := strconv.ParseInt(v, 10, 64); err == nil {
				continue
			}
			affinity = AffinityReal
		}
		if _, ok := parseReal(v); !ok {
			return AffinityText
		}
	}
	if !seenValue {
		return AffinityText
	}
	return affinity
}

func convert(raw string, affinity Affinity) any {
	if raw == "" {
		return nil
	}
	switch affinity {
	case AffinityInteger:
		if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return v
		}
	case AffinityReal:
		if v, ok := parseReal(strings.TrimSpace(raw)); ok {
			return v
		}
	}
	return raw
}

// parseReal accepts plain decimal and exponent notation only; strconv also takes
// "NaN", "Inf" and hex floats, which are names rather than numbers in a roster.
func parseReal(v string) (float64, bool) {
	if strings.ContainsFunc(v, func(r rune) bool {
		return (r < '0' || r > '9') && !strings.ContainsRune("+-.eE", r)
	}) {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
