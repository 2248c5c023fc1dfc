package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
)

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	content := "\ufeffName,Team,League\nMessi,FC X,La Liga\n\"Ronaldo, C.\",FC Y,Serie A\n\nNeymar,FC X,La Liga\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	table, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if strings.Join(table.Header, "|") != "Name|Team|League" {
		t.Fatalf("BOM must be stripped from the header: %q", table.Header)
	}
	if len(table.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table.Records))
	}
	if table.Records[1].Values[0] != "Ronaldo, C." {
		t.Fatalf("quoted field not preserved: %q", table.Records[1].Values[0])
	}
	last := table.Records[2]
	if last.Row != 3 || last.Line != 5 {
		t.Fatalf("unexpected position: row=%d line=%d", last.Row, last.Line)
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoader_ReadParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "inconsistent column count", input: "Name,Team,League\nMessi,FC X\n"},
		{name: "malformed quoting", input: "Name,Team,League\n\"Messi,FC X,La Liga\n"},
		{name: "bare quote", input: "Name,Team,League\nMe\"ssi,FC X,La Liga\n"},
		{name: "duplicate header", input: "Name,Team,League,Name\nMessi,FC X,La Liga,Leo\n"},
		{name: "invalid utf-8", input: "Name,Team,League\n\xff\xfe\xfd,FC X,La Liga\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Read(context.Background(), strings.NewReader(tc.input))
			if !errors.Is(err, roster.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestLoader_ReadHeaderOnly(t *testing.T) {
	table, err := NewLoader().Read(context.Background(), strings.NewReader("Name,Team,League\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Header) != 3 || len(table.Records) != 0 {
		t.Fatalf("unexpected table: %+v", table)
	}
}
