package txmanager_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/txmanager"
)

func openDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE items (name TEXT NOT NULL)`)
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}

func insert(ctx context.Context, db *dbmetrics.DB, name string) error {
	_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, name)
	return err
}

func count(t *testing.T, db *dbmetrics.DB) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func TestDo_Commit(t *testing.T) {
	db := openDB(t)
	m := txmanager.NewTransactionManager(db, false)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return insert(ctx, db, "a")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db))
}

func TestDo_RollbackOnError(t *testing.T) {
	db := openDB(t)
	m := txmanager.NewTransactionManager(db, false)
	errStop := errors.New("stop")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insert(ctx, db, "a"))
		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 0, count(t, db))
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := openDB(t)
	m := txmanager.NewTransactionManager(db, false)
	errStop := errors.New("stop")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		outer, _ := dbmetrics.TxFromContext(ctx)

		if err := m.Do(ctx, func(inner context.Context) error {
			tx, _ := dbmetrics.TxFromContext(inner)
			assert.Same(t, outer, tx)
			return insert(inner, db, "nested")
		}); err != nil {
			return err
		}
		return errStop
	})

	// внешняя ошибка откатывает и то, что записал вложенный вызов
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 0, count(t, db))
}

func TestDo_RollbackOnPanic(t *testing.T) {
	db := openDB(t)
	m := txmanager.NewTransactionManager(db, false)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			require.NoError(t, insert(ctx, db, "a"))
			panic("boom")
		})
	})

	assert.Equal(t, 0, count(t, db))
}

func TestDoReadOnly_WithoutIsolationSupport(t *testing.T) {
	db := openDB(t)
	m := txmanager.NewTransactionManager(db, false)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		var n int
		return dbmetrics.GetExecutor(ctx, db).QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	})

	require.NoError(t, err)
}

func TestDo_BeginError(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())
	m := txmanager.NewTransactionManager(db, false)

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, txmanager.ErrBeginTx)
}
