package book

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/postgres.sql
var postgresSchema string

//go:embed schema/sqlite.sql
var sqliteSchema string

// SchemaInitializer is implemented by repositories that can create their own table.
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// EnsureSchema creates the books table when the repository supports it.
func EnsureSchema(ctx context.Context, repo Repository) error {
	if si, ok := repo.(SchemaInitializer); ok {
		return si.EnsureSchema(ctx)
	}
	return nil
}

// Open connects to the storage backend selected by dsn. sqlite:// and file: DSNs
// open SQLite; anything else is handed to pgxpool. The returned close func releases
// the underlying pool.
func Open(ctx context.Context, dsn string, timeout time.Duration) (Repository, func(), error) {
	if path, ok := sqlitePath(dsn); ok {
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgresRepo(pool, timeout), pool.Close, nil
}

func sqlitePath(dsn string) (string, bool) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return strings.TrimPrefix(dsn, "sqlite://"), true
	case strings.HasPrefix(dsn, "sqlite:"):
		return strings.TrimPrefix(dsn, "sqlite:"), true
	case strings.HasPrefix(dsn, "file:"):
		return dsn, true
	}
	return "", false
}
