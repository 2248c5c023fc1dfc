package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-manager/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	columns       []string
	playersByTeam map[int64][]player.Player
}

func NewPlayerRepository(columns []string, players []player.Player) *PlayerRepository {
	playersByTeam := make(map[int64][]player.Player)
	for _, p := range players {
		if p.TeamID == nil {
			continue
		}
		playersByTeam[*p.TeamID] = append(playersByTeam[*p.TeamID], p)
	}

	return &PlayerRepository{
		columns:       append([]string(nil), columns...),
		playersByTeam: playersByTeam,
	}
}

func (r *PlayerRepository) Columns(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.columns...), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByTeam[teamID]
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, p.Clone())
	}

	return out, nil
}

func (r *PlayerRepository) CountByTeam(_ context.Context) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]int, len(r.playersByTeam))
	for teamID, players := range r.playersByTeam {
		out[teamID] = len(players)
	}

	return out, nil
}
