package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

type openOptions struct {
	readOnly       bool
	queryFormatter func(string) string
}

type Option func(*openOptions)

// ReadOnly opens the file with mode=ro.
func ReadOnly() Option {
	return func(o *openOptions) { o.readOnly = true }
}

// WithQueryFormatter sets how statements are rendered on trace spans.
func WithQueryFormatter(fn func(string) string) Option {
	return func(o *openOptions) { o.queryFormatter = fn }
}

// Open returns an instrumented handle on the SQLite file at path. A read-write
// handle is pinned to one connection so the rebuild transaction owns the file.
func Open(ctx context.Context, path string, opts ...Option) (*sqlx.DB, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	traceOpts := []otelsql.Option{
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName(dbNameFromPath(path)),
	}
	if o.queryFormatter != nil {
		traceOpts = append(traceOpts, otelsql.WithQueryFormatter(o.queryFormatter))
	}

	db, err := otelsqlx.Open(DriverName, DSN(path, o.readOnly), traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if o.readOnly {
		db.SetMaxOpenConns(4)
	} else {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	return db, nil
}
