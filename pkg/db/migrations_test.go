package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := GetEmbeddedMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "catalog", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "fulltext", migrations[1].Name)
}

func TestInitializeDatabase(t *testing.T) {
	conn := openTestDB(t)

	require.NoError(t, InitializeDatabase(conn))
	// Re-running is a no-op.
	require.NoError(t, InitializeDatabase(conn))

	status, err := NewMigrationManager(conn).GetMigrationStatus()
	require.NoError(t, err)
	assert.Len(t, status.Applied, 2)
	assert.Empty(t, status.Pending)
	for _, m := range status.Applied {
		assert.NotNil(t, m.AppliedAt)
	}

	_, err = conn.Exec("INSERT INTO paremiotipus (paremiotipus, modisme) VALUES ('Fer el ronso', 'Fer-se el ronso')")
	require.NoError(t, err)

	var n int
	err = conn.QueryRow("SELECT COUNT(*) FROM paremiotipus_fts WHERE paremiotipus_fts MATCH 'ronso'").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "insert trigger feeds the full-text index")

	_, err = conn.Exec("DELETE FROM paremiotipus")
	require.NoError(t, err)
	err = conn.QueryRow("SELECT COUNT(*) FROM paremiotipus_fts WHERE paremiotipus_fts MATCH 'ronso'").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n, "delete trigger cleans the full-text index")
}

func TestMigrationsFromPath(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"README.md":      "ignored",
		"bad.sql":        "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	conn := openTestDB(t)
	m := NewMigrationManagerFromPath(conn, dir)

	available, err := m.GetAvailableMigrations()
	require.NoError(t, err)
	require.Len(t, available, 2)

	require.NoError(t, m.EnsureMigrationsTable())
	require.NoError(t, m.ApplyMigration(available[0]))

	pending, err := m.GetPendingMigrations()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Name)

	require.NoError(t, m.ApplyPendingMigrations())
	pending, err = m.GetPendingMigrations()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestFailedMigrationRollsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_broken.sql"), []byte("CREATE TABLE c (id INTEGER); NOT SQL;"), 0o644))

	conn := openTestDB(t)
	m := NewMigrationManagerFromPath(conn, dir)
	require.Error(t, m.ApplyPendingMigrations())

	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	assert.Empty(t, applied)
}
