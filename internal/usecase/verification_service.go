package usecase

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

// DatabaseInspector is the read-only view of the migrated database that the
// checks need.
type DatabaseInspector interface {
	TableNames(ctx context.Context) ([]string, error)
	ColumnNames(ctx context.Context, table string) ([]string, error)
	CountRows(ctx context.Context, table string) (int64, error)
	DistinctText(ctx context.Context, table, column string) ([]string, error)
	DistinctInt64(ctx context.Context, table, column string) ([]int64, bool, error)
}

// InspectorOpener opens the database at path read-only.
type InspectorOpener func(ctx context.Context, dbPath string) (DatabaseInspector, io.Closer, error)

type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

type VerificationReport struct {
	CSVPath string        `json:"csv_path"`
	DBPath  string        `json:"db_path"`
	Checks  []CheckResult `json:"checks"`
}

func (r VerificationReport) Passed() bool {
	return r.Failed() == 0
}

func (r VerificationReport) Failed() int {
	failed := 0
	for _, c := range r.Checks {
		if !c.Passed {
			failed++
		}
	}
	return failed
}

// Check names, in run order.
const (
	CheckTablesExist     = "Tables exist"
	CheckPlayersRowCount = "Players row count"
	CheckLeaguesContent  = "Leagues content"
	CheckTeamsLeagueFK   = "Teams league FK"
	CheckPlayersColumns  = "Players columns"
	CheckPlayersTeamFK   = "Players team FK"
)

type verifyEnv struct {
	db     DatabaseInspector
	csv    roster.SourceTable
	csvErr error
}

type verifyCheck struct {
	name string
	run  func(ctx context.Context, env verifyEnv) error
}

var verifyChecks = []verifyCheck{
	{name: CheckTablesExist, run: checkTablesExist},
	{name: CheckPlayersRowCount, run: checkPlayersRowCount},
	{name: CheckLeaguesContent, run: checkLeaguesContent},
	{name: CheckTeamsLeagueFK, run: checkTeamsLeagueFK},
	{name: CheckPlayersColumns, run: checkPlayersColumns},
	{name: CheckPlayersTeamFK, run: checkPlayersTeamFK},
}

// VerificationService checks a migrated database against its source CSV. It
// shares nothing with the writer beyond the file formats.
type VerificationService struct {
	loader SourceLoader
	open   InspectorOpener
	logger *logging.Logger
}

func NewVerificationService(loader SourceLoader, open InspectorOpener, logger *logging.Logger) *VerificationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VerificationService{
		loader: loader,
		open:   open,
		logger: logger,
	}
}

// Verify runs every check and reports each one. A missing database or CSV file
// is returned as roster.ErrNotFound before any check runs.
func (s *VerificationService) Verify(ctx context.Context, csvPath, dbPath string) (VerificationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Verify")
	defer span.End()

	if err := requireFile(dbPath, "database"); err != nil {
		return VerificationReport{}, err
	}
	if err := requireFile(csvPath, "csv"); err != nil {
		return VerificationReport{}, err
	}

	db, closer, err := s.open(ctx, dbPath)
	if err != nil {
		return VerificationReport{}, fmt.Errorf("open database read-only: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			s.logger.WarnContext(ctx, "close database failed", "error", err)
		}
	}()

	env := verifyEnv{db: db}
	env.csv, env.csvErr = s.loader.Load(ctx, csvPath)
	if env.csvErr != nil {
		s.logger.WarnContext(ctx, "source csv unreadable, csv checks will fail", "error", env.csvErr)
	}

	report := VerificationReport{CSVPath: csvPath, DBPath: dbPath}
	for _, check := range verifyChecks {
		result := runCheck(ctx, check, env)
		if !result.Passed {
			s.logger.DebugContext(ctx, "verification check failed", "check", result.Name, "message", result.Message)
		}
		report.Checks = append(report.Checks, result)
	}

	s.logger.InfoContext(ctx, "verification finished", "checks", len(report.Checks), "failed", report.Failed())
	return report, nil
}

// runCheck isolates one check so an error or panic only fails that check.
func runCheck(ctx context.Context, check verifyCheck, env verifyEnv) CheckResult {
	var err error
	var pc panics.Catcher
	pc.Try(func() {
		err = check.run(ctx, env)
	})
	if recovered := pc.Recovered(); recovered != nil {
		err = fmt.Errorf("check panicked: %v", recovered.Value)
	}

	if err != nil {
		return CheckResult{Name: check.name, Message: err.Error()}
	}
	return CheckResult{Name: check.name, Passed: true}
}

func requireFile(path, kind string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %s path is required", ErrInvalidInput, kind)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(roster.ErrNotFound, "%s file '%s'", kind, path)
		}
		return fmt.Errorf("stat %s file %s: %w", kind, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s path %s is a directory", ErrInvalidInput, kind, path)
	}
	return nil
}

func checkTablesExist(ctx context.Context, env verifyEnv) error {
	tables, err := env.db.TableNames(ctx)
	if err != nil {
		return err
	}
	missing := missingFrom(tables, []string{"players", "leagues", "teams"})
	if len(missing) > 0 {
		return fmt.Errorf("Missing tables: %s", formatSet(missing))
	}
	return nil
}

func checkPlayersRowCount(ctx context.Context, env verifyEnv) error {
	if env.csvErr != nil {
		return fmt.Errorf("cannot read source csv: %w", env.csvErr)
	}
	count, err := env.db.CountRows(ctx, "players")
	if err != nil {
		return err
	}
	if want := int64(len(env.csv.Records)); count != want {
		return fmt.Errorf("Expected %d players, found %d", want, count)
	}
	return nil
}

func checkLeaguesContent(ctx context.Context, env verifyEnv) error {
	if env.csvErr != nil {
		return fmt.Errorf("cannot read source csv: %w", env.csvErr)
	}
	csvLeagues, ok := env.csv.LeagueNames()
	if !ok {
		return fmt.Errorf("source csv has no %s column", roster.ColumnLeague)
	}
	dbLeagues, err := env.db.DistinctText(ctx, "leagues", "name")
	if err != nil {
		return err
	}
	if !sameSet(dbLeagues, csvLeagues) {
		return fmt.Errorf("Leagues mismatch: %s vs %s", formatSet(dbLeagues), formatSet(csvLeagues))
	}
	return nil
}

func checkTeamsLeagueFK(ctx context.Context, env verifyEnv) error {
	leagueIDs, hasNull, err := env.db.DistinctInt64(ctx, "teams", "league_id")
	if err != nil {
		return err
	}
	validIDs, _, err := env.db.DistinctInt64(ctx, "leagues", "id")
	if err != nil {
		return err
	}
	invalid := missingFrom(validIDs, leagueIDs)
	if len(invalid) > 0 || hasNull {
		return fmt.Errorf("Invalid league_ids: %s", formatIDs(invalid, hasNull))
	}
	return nil
}

func checkPlayersColumns(ctx context.Context, env verifyEnv) error {
	columns, err := env.db.ColumnNames(ctx, "players")
	if err != nil {
		return err
	}
	var redundant []string
	hasTeamID := false
	for _, c := range columns {
		switch {
		case strings.EqualFold(c, roster.ColumnLeague), strings.EqualFold(c, roster.ColumnTeam):
			redundant = append(redundant, c)
		case strings.EqualFold(c, roster.ColumnTeamID):
			hasTeamID = true
		}
	}
	if len(redundant) > 0 {
		return fmt.Errorf("Redundant columns found: %s", formatSet(redundant))
	}
	if !hasTeamID {
		return fmt.Errorf("Missing column: %s", roster.ColumnTeamID)
	}
	return nil
}

// checkPlayersTeamFK treats NULL team ids as valid: a player may have no team.
func checkPlayersTeamFK(ctx context.Context, env verifyEnv) error {
	teamIDs, _, err := env.db.DistinctInt64(ctx, "players", "team_id")
	if err != nil {
		return err
	}
	validIDs, _, err := env.db.DistinctInt64(ctx, "teams", "id")
	if err != nil {
		return err
	}
	if invalid := missingFrom(validIDs, teamIDs); len(invalid) > 0 {
		return fmt.Errorf("Invalid team_ids: %s", formatIDs(invalid, false))
	}
	return nil
}

// missingFrom returns the members of want absent from have.
func missingFrom[T comparable](have, want []T) []T {
	present := make(map[T]struct{}, len(have))
	for _, v := range have {
		present[v] = struct{}{}
	}
	var out []T
	for _, v := range want {
		if _, ok := present[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	return len(missingFrom(a, b)) == 0 && len(missingFrom(b, a)) == 0
}

func formatSet(values []string) string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	quoted := make([]string, 0, len(sorted))
	for _, v := range sorted {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

func formatIDs(ids []int64, withNull bool) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	parts := make([]string, 0, len(sorted)+1)
	for _, id := range sorted {
		parts = append(parts, fmt.Sprint(id))
	}
	if withNull {
		parts = append(parts, "NULL")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
