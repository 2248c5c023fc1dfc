package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/roster"
	idgen "github.com/riskibarqy/club-manager/internal/platform/id"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SourceLoader reads the roster CSV.
type SourceLoader interface {
	Load(ctx context.Context, path string) (roster.SourceTable, error)
}

// RosterWriter atomically replaces the stored roster.
type RosterWriter interface {
	Replace(ctx context.Context, result roster.Result) error
}

// MigrationSummary describes one completed migration run.
type MigrationSummary struct {
	RunID       string
	Leagues     int
	Teams       int
	Players     int
	FreeAgents  int
	Fingerprint uint64
	Duration    time.Duration
}

type MigrationService struct {
	loader SourceLoader
	writer RosterWriter
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewMigrationService(loader SourceLoader, writer RosterWriter, idGen idgen.Generator, logger *logging.Logger) *MigrationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MigrationService{
		loader: loader,
		writer: writer,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// Normalize loads and normalizes the CSV without writing anything.
func (s *MigrationService) Normalize(ctx context.Context, csvPath string) (roster.Result, error) {
	csvPath = strings.TrimSpace(csvPath)
	if csvPath == "" {
		return roster.Result{}, fmt.Errorf("%w: csv path is required", ErrInvalidInput)
	}

	table, err := s.loader.Load(ctx, csvPath)
	if err != nil {
		return roster.Result{}, fmt.Errorf("load source csv: %w", err)
	}

	result, err := roster.Normalize(table)
	if err != nil {
		return roster.Result{}, fmt.Errorf("normalize roster: %w", err)
	}

	return result, nil
}

// Migrate rebuilds the leagues, teams and players tables from the CSV. The
// previous contents are discarded.
func (s *MigrationService) Migrate(ctx context.Context, csvPath string) (MigrationSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MigrationService.Migrate")
	defer span.End()

	runID, err := s.idGen.NewID()
	if err != nil {
		return MigrationSummary{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID, "csv_path", csvPath)
	startedAt := s.now()
	logger.InfoContext(ctx, "migration started")

	result, err := s.Normalize(ctx, csvPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalize failed")
		logger.ErrorContext(ctx, "migration aborted before write", "error", err)
		return MigrationSummary{}, err
	}

	summary := MigrationSummary{
		RunID:       runID,
		Leagues:     len(result.Leagues),
		Teams:       len(result.Teams),
		Players:     len(result.Players),
		FreeAgents:  result.FreeAgents(),
		Fingerprint: result.Fingerprint(),
	}
	logger.DebugContext(ctx, "roster normalized",
		"leagues", summary.Leagues,
		"teams", summary.Teams,
		"players", summary.Players,
		"columns", result.Projection.ColumnNames(),
	)

	if err := s.writer.Replace(ctx, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		logger.ErrorContext(ctx, "migration rolled back", "error", err)
		return MigrationSummary{}, fmt.Errorf("replace roster tables: %w", err)
	}

	summary.Duration = s.now().Sub(startedAt)
	span.SetAttributes(
		attribute.Int("roster.leagues", summary.Leagues),
		attribute.Int("roster.teams", summary.Teams),
		attribute.Int("roster.players", summary.Players),
	)
	logger.InfoContext(ctx, "migration completed",
		"leagues", summary.Leagues,
		"teams", summary.Teams,
		"players", summary.Players,
		"free_agents", summary.FreeAgents,
		"fingerprint", fmt.Sprintf("%016x", summary.Fingerprint),
		"duration", summary.Duration,
	)

	return summary, nil
}
