package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/domain/league"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/infrastructure/csvsource"
	cacherepo "github.com/riskibarqy/club-manager/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/sqlite"
	basecache "github.com/riskibarqy/club-manager/internal/platform/cache"
	idgen "github.com/riskibarqy/club-manager/internal/platform/id"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

// Roster sources the manager can read from.
const (
	SourceDB  = "db"
	SourceCSV = "csv"
)

// NewMigrationService wires the CSV loader to a writable handle on cfg.DBPath.
// The returned func closes the handle. A missing CSV fails before the database
// file is created.
func NewMigrationService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.MigrationService, func() error, error) {
	if err := requireFile(cfg.CSVPath, "source csv"); err != nil {
		return nil, nil, err
	}

	db, err := openWritableDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	svc := usecase.NewMigrationService(
		csvsource.NewLoader(),
		sqlite.NewRosterWriter(db),
		idgen.NewUUIDGenerator(),
		logger.Named("migrate"),
	)
	return svc, db.Close, nil
}

func NewVerificationService(logger *logging.Logger) *usecase.VerificationService {
	return usecase.NewVerificationService(csvsource.NewLoader(), openInspector, logger.Named("verify"))
}

// NewClubService wires the screens to the migrated database, or to the CSV
// itself when source is SourceCSV. The database is only ever opened read-only.
func NewClubService(ctx context.Context, cfg config.Config, source string, logger *logging.Logger) (*usecase.ClubService, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", SourceDB:
		if err := requireFile(cfg.DBPath, "database"); err != nil {
			return nil, nil, err
		}
		db, err := openReadOnlyDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		store := basecache.NewStore(cfg.CacheTTL)
		svc := newCachedClubService(
			sqlite.NewLeagueRepository(db),
			sqlite.NewTeamRepository(db),
			sqlite.NewPlayerRepository(db),
			store,
		)
		logger.InfoContext(ctx, "club service ready", "source", SourceDB, "db_path", cfg.DBPath, "cache_ttl", cfg.CacheTTL)
		return svc, db.Close, nil
	case SourceCSV:
		table, err := csvsource.NewLoader().Load(ctx, cfg.CSVPath)
		if err != nil {
			return nil, nil, err
		}
		result, err := roster.Normalize(table)
		if err != nil {
			return nil, nil, fmt.Errorf("normalize roster: %w", err)
		}
		repos := memory.FromRoster(result)
		logger.InfoContext(ctx, "club service ready", "source", SourceCSV, "csv_path", cfg.CSVPath, "players", len(result.Players))
		return usecase.NewClubService(repos.Leagues, repos.Teams, repos.Players), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown source %q, want %s or %s", usecase.ErrInvalidInput, source, SourceDB, SourceCSV)
	}
}

func newCachedClubService(leagueRepo league.Repository, teamRepo team.Repository, playerRepo player.Repository, store *basecache.Store) *usecase.ClubService {
	return usecase.NewClubService(
		cacherepo.NewLeagueRepository(leagueRepo, store),
		cacherepo.NewTeamRepository(teamRepo, store),
		cacherepo.NewPlayerRepository(playerRepo, store),
	)
}

func requireFile(path, kind string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(roster.ErrNotFound, "%s '%s'", kind, path)
		}
		return fmt.Errorf("stat %s: %w", kind, err)
	}
	return nil
}
