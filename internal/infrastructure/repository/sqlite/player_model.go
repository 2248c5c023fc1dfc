package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
)

// scanPlayers reads SELECT * rows of the players table. Columns other than id
// and team_id become attributes in table order.
func scanPlayers(rows *sqlx.Rows) ([]player.Player, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read players columns: %w", err)
	}

	var out []player.Player
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}

		var p player.Player
		for i, col := range columns {
			switch strings.ToLower(col) {
			case roster.ColumnID:
				if id := nullableInt64(values[i]); id != nil {
					p.ID = *id
				}
			case roster.ColumnTeamID:
				p.TeamID = nullableInt64(values[i])
			default:
				p.Attributes = append(p.Attributes, player.Attribute{Column: col, Value: attributeValue(values[i])})
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player rows: %w", err)
	}

	return out, nil
}

type squadCountModel struct {
	TeamID int64 `db:"team_id"`
	Count  int   `db:"squad_size"`
}
