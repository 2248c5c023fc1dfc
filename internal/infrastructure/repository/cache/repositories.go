package cache

import (
	"context"
	"maps"
	"strconv"

	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	basecache "github.com/riskibarqy/club-manager/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	key := "league:id:" + strconv.FormatInt(leagueID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedByID[league.League], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return cachedByID[league.League]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	key := "team:league:" + strconv.FormatInt(leagueID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(teamID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedByID[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return cachedByID[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Columns(ctx context.Context) ([]string, error) {
	items, err := basecache.Load(ctx, r.cache, "player:columns", r.next.Columns)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), items...), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	key := "player:team:" + strconv.FormatInt(teamID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context) (map[int64]int, error) {
	counts, err := basecache.Load(ctx, r.cache, "player:count-by-team", r.next.CountByTeam)
	if err != nil {
		return nil, err
	}
	return maps.Clone(counts), nil
}
