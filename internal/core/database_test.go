// AngelaMos | 2026
// database_test.go

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cantina-core/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), config.DatabaseConfig{
		Path:        ":memory:",
		BusyTimeout: time.Second,
		ForeignKeys: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestStorePing(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
}

func TestInTxCommit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.DB.ExecContext(
		ctx,
		"CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)",
	)
	require.NoError(t, err)

	err = InTx(ctx, store.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO items (name) VALUES (?)",
			"first",
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(
			ctx,
			"INSERT INTO items (name) VALUES (?)",
			"second",
		)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, store.DB.GetContext(
		ctx,
		&count,
		"SELECT COUNT(*) FROM items",
	))
	assert.Equal(t, 2, count)
}

func TestInTxRollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.DB.ExecContext(
		ctx,
		"CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)",
	)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = InTx(ctx, store.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO items (name) VALUES (?)",
			"doomed",
		); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, store.DB.GetContext(
		ctx,
		&count,
		"SELECT COUNT(*) FROM items",
	))
	assert.Equal(t, 0, count, "rolled back insert must not be visible")
}

func TestNewStoreBadPath(t *testing.T) {
	_, err := NewStore(context.Background(), config.DatabaseConfig{
		Path: "/nonexistent-dir/sub/cantina.db",
	})
	require.Error(t, err)
}
