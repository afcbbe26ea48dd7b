package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/osse101/LootLoop_Go/internal/database/schema"
)

// Open opens the SQLite file at path, creating its directory, and applies
// the schema. ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New(ErrMsgPathRequired)
	}

	dsn := path
	if path != ":memory:" {
		clean := filepath.Clean(path)
		if dir := filepath.Dir(clean); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateDir, err)
			}
		}
		dsn = clean + DSNPragmas
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	db.SetMaxOpenConns(MaxOpenConnections)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}
	if _, err := db.ExecContext(ctx, schema.SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToApplySchema, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase, "path", path)
	return db, nil
}
