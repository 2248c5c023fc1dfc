package player

import (
	"fmt"
	"strings"
)

// NameColumn is the roster column shown as a player's display name.
const NameColumn = "Name"

// Attribute is one source column carried over to the players table. Value is
// nil, int64, float64 or string.
type Attribute struct {
	Column string
	Value  any
}

// Player is one roster row. TeamID is nil when the row named no known team.
type Player struct {
	ID         int64
	TeamID     *int64
	Attributes []Attribute
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be positive")
	}
	if p.TeamID != nil && *p.TeamID <= 0 {
		return fmt.Errorf("player team id must be positive when set")
	}
	seen := make(map[string]struct{}, len(p.Attributes))
	for _, attr := range p.Attributes {
		key := strings.ToLower(attr.Column)
		if key == "" {
			return fmt.Errorf("player attribute column is required")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate player attribute %q", attr.Column)
		}
		seen[key] = struct{}{}
		switch attr.Value.(type) {
		case nil, int64, float64, string:
		default:
			return fmt.Errorf("player attribute %q has unsupported type %T", attr.Column, attr.Value)
		}
	}

	return nil
}

// Clone copies the attribute slice so callers can edit the result freely.
func (p Player) Clone() Player {
	p.Attributes = append([]Attribute(nil), p.Attributes...)
	if p.TeamID != nil {
		id := *p.TeamID
		p.TeamID = &id
	}
	return p
}

// Attribute looks a column up case-insensitively.
func (p Player) Attribute(column string) (any, bool) {
	for _, attr := range p.Attributes {
		if strings.EqualFold(attr.Column, column) {
			return attr.Value, true
		}
	}
	return nil, false
}

// Name falls back to "#<id>" when the roster has no usable Name column.
func (p Player) Name() string {
	if v, ok := p.Attribute(NameColumn); ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fmt.Sprintf("#%d", p.ID)
}

// FormatValue renders an attribute value for display; NULL renders empty.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", value), "0"), ".")
	default:
		return fmt.Sprint(value)
	}
}
