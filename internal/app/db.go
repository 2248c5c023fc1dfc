package app

import (
	"context"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

func openWritableDB(ctx context.Context, path string) (*sqlx.DB, error) {
	return sqlite.Open(ctx, path, sqlite.WithQueryFormatter(formatDBQueryForTrace))
}

func openReadOnlyDB(ctx context.Context, path string) (*sqlx.DB, error) {
	return sqlite.Open(ctx, path, sqlite.ReadOnly(), sqlite.WithQueryFormatter(formatDBQueryForTrace))
}

// openInspector is the usecase.InspectorOpener used by verify.
func openInspector(ctx context.Context, path string) (usecase.DatabaseInspector, io.Closer, error) {
	db, err := openReadOnlyDB(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewInspector(db), db, nil
}
