package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/team"
)

// ClubSummary is one row of the club selection table.
type ClubSummary struct {
	Team      team.Team
	League    league.League
	SquadSize int
}

// Squad is a club with its players, for the manager view.
type Squad struct {
	Club    ClubSummary
	Columns []string
	Players []player.Player
}

type ClubService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewClubService(leagueRepo league.Repository, teamRepo team.Repository, playerRepo player.Repository) *ClubService {
	return &ClubService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *ClubService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

// ListClubs returns every club in id order with its league and squad size.
func (s *ClubService) ListClubs(ctx context.Context) ([]ClubSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	counts, err := s.playerRepo.CountByTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("count players by team: %w", err)
	}

	leagueByID := make(map[int64]league.League, len(leagues))
	for _, l := range leagues {
		leagueByID[l.ID] = l
	}

	out := make([]ClubSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, ClubSummary{
			Team:      t,
			League:    leagueByID[t.LeagueID],
			SquadSize: counts[t.ID],
		})
	}

	return out, nil
}

func (s *ClubService) ListClubsByLeague(ctx context.Context, leagueID int64) ([]ClubSummary, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}
	counts, err := s.playerRepo.CountByTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("count players by team: %w", err)
	}

	out := make([]ClubSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, ClubSummary{Team: t, League: l, SquadSize: counts[t.ID]})
	}

	return out, nil
}

func (s *ClubService) GetSquad(ctx context.Context, teamID int64) (Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetSquad")
	defer span.End()

	if teamID <= 0 {
		return Squad{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return Squad{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return Squad{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, t.LeagueID)
	if err != nil {
		return Squad{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return Squad{}, fmt.Errorf("%w: league=%d of team=%d", ErrNotFound, t.LeagueID, teamID)
	}

	columns, err := s.playerRepo.Columns(ctx)
	if err != nil {
		return Squad{}, fmt.Errorf("list player columns: %w", err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return Squad{}, fmt.Errorf("list players by team: %w", err)
	}

	return Squad{
		Club:    ClubSummary{Team: t, League: l, SquadSize: len(players)},
		Columns: columns,
		Players: players,
	}, nil
}
