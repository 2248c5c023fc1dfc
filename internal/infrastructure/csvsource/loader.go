package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const ctxCheckEvery = 1024

// Loader reads the roster CSV into a roster.SourceTable.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load opens path and reads it. A missing file is roster.ErrNotFound.
func (l *Loader) Load(ctx context.Context, path string) (roster.SourceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return roster.SourceTable{}, errors.Wrapf(roster.ErrNotFound, "source csv %s", path)
		}
		return roster.SourceTable{}, errors.Wrapf(err, "open source csv %s", path)
	}
	defer f.Close()

	table, err := l.Read(ctx, f)
	if err != nil {
		return roster.SourceTable{}, errors.Wrapf(err, "read %s", path)
	}
	return table, nil
}

// Read parses CSV text. A leading byte-order mark is dropped; UTF-16 input with
// a BOM is transcoded, anything else must already be UTF-8.
func (l *Loader) Read(ctx context.Context, r io.Reader) (roster.SourceTable, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return roster.SourceTable{}, errors.Wrap(roster.ErrParse, "source csv has no header row")
	}
	if err != nil {
		return roster.SourceTable{}, markParse(err)
	}
	if err := checkUTF8(header, 1); err != nil {
		return roster.SourceTable{}, err
	}
	if err := checkHeader(header); err != nil {
		return roster.SourceTable{}, err
	}

	table := roster.SourceTable{Header: header}
	for row := 1; ; row++ {
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return roster.SourceTable{}, err
			}
		}

		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return roster.SourceTable{}, markParse(err)
		}
		line, _ := reader.FieldPos(0)
		if err := checkUTF8(values, line); err != nil {
			return roster.SourceTable{}, err
		}
		table.Records = append(table.Records, roster.Record{Row: row, Line: line, Values: values})
	}

	return table, nil
}

func markParse(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return errors.Mark(errors.Wrap(err, "malformed csv"), roster.ErrParse)
	}
	return errors.Wrap(err, "read csv")
}

func checkHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.TrimSpace(name)
		if first, dup := seen[key]; dup {
			return errors.Wrapf(roster.ErrParse, "duplicate header column %q (fields %d and %d)", key, first+1, i+1)
		}
		seen[key] = i
	}
	return nil
}

func checkUTF8(values []string, line int) error {
	for i, v := range values {
		if !utf8.ValidString(v) {
			return errors.Wrapf(roster.ErrParse, "line %d, field %d: invalid UTF-8", line, i+1)
		}
	}
	return nil
}
