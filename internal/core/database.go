// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/carterperez-dev/cantina-core/internal/config"
)

type Store struct {
	DB *sqlx.DB
}

func NewStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single shared handle: SQLite serializes writers and the handle
	// itself is not safe for concurrent statements, so callers that want
	// parallelism must open their own store.
	db.SetMaxOpenConns(1)

	if cfg.BusyTimeout > 0 {
		pragma := fmt.Sprintf(
			"PRAGMA busy_timeout = %d",
			cfg.BusyTimeout.Milliseconds(),
		)
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close() //nolint:errcheck // cleanup on setup failure
			return nil, fmt.Errorf("set busy timeout: %w", err)
		}
	}

	if cfg.ForeignKeys {
		// Some builds ship without foreign key support; enforcement is
		// best-effort and its absence is not fatal.
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			slog.Warn("failed to enable foreign key enforcement", "error", err)
		}
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (s *Store) Stats() sql.DBStats {
	return s.DB.Stats()
}

// DBTX is the statement surface shared by the pool and open transactions.
// Repositories written against it run in autocommit mode on the pool and
// deferred mode inside an InTx scope without code changes.
type DBTX interface {
	sqlx.ExtContext
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(
		ctx context.Context,
		dest any,
		query string,
		args ...any,
	) error
}

// InTx runs fn inside a transaction. Exactly one of commit or rollback
// happens per call: rollback when fn errors or panics, commit otherwise.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // best-effort rollback on panic
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
