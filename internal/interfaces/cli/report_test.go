package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

func sampleReport(failing bool) usecase.VerificationReport {
	report := usecase.VerificationReport{
		CSVPath: "data/players.csv",
		DBPath:  "data/game.db",
		Checks: []usecase.CheckResult{
			{Name: usecase.CheckTablesExist, Passed: true},
			{Name: usecase.CheckPlayersRowCount, Passed: true},
		},
	}
	if failing {
		report.Checks[1] = usecase.CheckResult{Name: usecase.CheckPlayersRowCount, Message: "Expected 4 players, found 3"}
	}
	return report
}

func TestWriteReport_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		failing bool
		want    string
	}{
		{
			name: "all pass",
			want: "[PASS] Tables exist\n[PASS] Players row count\nAll tests passed!\n",
		},
		{
			name:    "one failure",
			failing: true,
			want:    "[PASS] Tables exist\n[FAIL] Players row count: Expected 4 players, found 3\n1 of 2 checks failed.\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := WriteReport(&out, sampleReport(tc.failing), FormatText); err != nil {
				t.Fatalf("write report: %v", err)
			}
			if out.String() != tc.want {
				t.Fatalf("unexpected output:\n%s", out.String())
			}
		})
	}
}

func TestWriteReport_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteReport(&out, sampleReport(true), FormatJSON); err != nil {
		t.Fatalf("write report: %v", err)
	}

	var decoded struct {
		Passed bool   `json:"passed"`
		Failed int    `json:"failed"`
		DBPath string `json:"db_path"`
		Checks []struct {
			Name    string `json:"name"`
			Passed  bool   `json:"passed"`
			Message string `json:"message"`
		} `json:"checks"`
	}
	if err := sonic.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.Passed || decoded.Failed != 1 || decoded.DBPath != "data/game.db" {
		t.Fatalf("unexpected summary: %+v", decoded)
	}
	if len(decoded.Checks) != 2 || decoded.Checks[1].Message != "Expected 4 players, found 3" {
		t.Fatalf("unexpected checks: %+v", decoded.Checks)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " json ": FormatJSON} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteMigrationSummary(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := WriteMigrationSummary(&out, "data/game.db", usecase.MigrationSummary{
		Leagues:    2,
		Teams:      12,
		Players:    1234,
		FreeAgents: 5,
		Duration:   1500 * time.Microsecond,
	})
	if err != nil {
		t.Fatalf("write summary: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "Migration complete: 'data/game.db' is now normalized.\n") {
		t.Fatalf("unexpected first line:\n%s", got)
	}
	if !strings.Contains(got, "players: 1,234 (5 without a team)") {
		t.Fatalf("expected humanized player count:\n%s", got)
	}
	if !strings.Contains(got, "took:    2ms") {
		t.Fatalf("expected rounded duration:\n%s", got)
	}
}
