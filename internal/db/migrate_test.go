package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Replaying every statement must succeed.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"plans", "plan_items", "plan_sessions"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_PlansSchema(t *testing.T) {
	db := openTestDB(t)

	var source struct {
		notNull int
		dflt    string
	}
	err := db.QueryRow(`SELECT "notnull", dflt_value FROM pragma_table_info('plans') WHERE name = 'source'`).
		Scan(&source.notNull, &source.dflt)
	require.NoError(t, err)
	assert.Equal(t, 1, source.notNull)
	assert.Equal(t, "''", source.dflt)

	var ddl string
	require.NoError(t, db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'plans'`).Scan(&ddl))
	assert.Contains(t, ddl, "source")
	for _, stmt := range migrations {
		assert.NotContains(t, strings.ToUpper(stmt), "ALTER TABLE", "all tables are created whole")
	}

	// Replaying the migrations against an existing schema is a no-op.
	require.NoError(t, Migrate(db))
}

func TestOpenDB_ForeignKeysCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, name, start_date, weekdays, daily_start_sec, daily_hour_cap, multiplier, created_at)
		VALUES ('p1', 'Course', '2025-03-17', 2, 68400, 1, 1, '2025-03-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_items (plan_id, seq, title, duration_min) VALUES ('p1', 0, 'Intro', 45)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO plan_items (plan_id, seq, title, duration_min) VALUES ('missing', 0, 'Orphan', 45)`)
	assert.Error(t, err, "foreign keys are enforced")

	_, err = db.Exec(`DELETE FROM plans WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_items`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenDB_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, name, start_date, weekdays, daily_start_sec, daily_hour_cap, multiplier, created_at)
		VALUES ('p1', 'Course', '2025-03-17', 0, 0, 1, 1, '2025-03-01T00:00:00Z')`)
	assert.Error(t, err, "empty weekday set")

	_, err = db.Exec(`INSERT INTO plans (id, name, start_date, weekdays, daily_start_sec, daily_hour_cap, multiplier, created_at)
		VALUES ('p2', 'Course', '2025-03-17', 1, 0, 0, 1, '2025-03-01T00:00:00Z')`)
	assert.Error(t, err, "zero daily cap")
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "studycal.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestOpenDB_PragmasOnEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "studycal.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	first, err := db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var fk, busy int
		var mode string
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busy))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
		assert.Equal(t, 1, fk)
		assert.Equal(t, int(BusyTimeout.Milliseconds()), busy)
		assert.Equal(t, "wal", mode)
	}
}

func TestDSN(t *testing.T) {
	mem := dsn(MemoryPath)
	assert.True(t, strings.HasPrefix(mem, ":memory:?"))
	assert.Contains(t, mem, "foreign_keys%281%29")
	assert.Contains(t, mem, "_txlock=immediate")
	assert.NotContains(t, mem, "journal_mode")

	assert.Contains(t, dsn("/tmp/plans.db"), "journal_mode%28WAL%29")
}
