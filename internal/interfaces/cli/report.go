package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/riskibarqy/club-manager/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q, want %s or %s", usecase.ErrInvalidInput, v, FormatText, FormatJSON)
	}
}

type jsonReport struct {
	usecase.VerificationReport
	Passed bool `json:"passed"`
	Failed int  `json:"failed"`
}

// WriteReport renders a verification report in one write, so a failing writer
// never leaves half a report behind.
func WriteReport(w io.Writer, report usecase.VerificationReport, format Format) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	switch format {
	case FormatJSON:
		payload := jsonReport{VerificationReport: report, Passed: report.Passed(), Failed: report.Failed()}
		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	default:
		for _, c := range report.Checks {
			if c.Passed {
				fmt.Fprintf(buf, "[PASS] %s\n", c.Name)
				continue
			}
			fmt.Fprintf(buf, "[FAIL] %s: %s\n", c.Name, c.Message)
		}
		if report.Passed() {
			buf.WriteString("All tests passed!\n")
		} else {
			fmt.Fprintf(buf, "%d of %d checks failed.\n", report.Failed(), len(report.Checks))
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func WriteMigrationSummary(w io.Writer, dbPath string, summary usecase.MigrationSummary) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Migration complete: '%s' is now normalized.\n", dbPath)
	fmt.Fprintf(buf, "  leagues: %s\n", humanize.Comma(int64(summary.Leagues)))
	fmt.Fprintf(buf, "  teams:   %s\n", humanize.Comma(int64(summary.Teams)))
	fmt.Fprintf(buf, "  players: %s (%s without a team)\n",
		humanize.Comma(int64(summary.Players)), humanize.Comma(int64(summary.FreeAgents)))
	fmt.Fprintf(buf, "  took:    %s\n", summary.Duration.Round(time.Millisecond))

	_, err := w.Write(buf.Bytes())
	return err
}
