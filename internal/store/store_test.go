package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_SchemaVersion(t *testing.T) {
	s := createTestStore(t)

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.ImportPeriods(context.Background(), "a.yaml", "auth", []Period{
		{LabelKey: "roman", Label: "Roman", MinYear: 43, MaxYear: 410},
	})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.CountPeriods(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMigrateToV1_AddsSkippedColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE imports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			authority_id TEXT NOT NULL,
			period_count INTEGER NOT NULL DEFAULT 0
		)
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	imp, err := s.ImportPeriods(context.Background(), "a.yaml", "auth", []Period{
		{LabelKey: "roman", Label: "Roman", MinYear: 43, MaxYear: 410},
		{LabelKey: "roman", Label: "Roman", MinYear: 43, MaxYear: 410},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, imp.Skipped)
}

func TestClose_Nil(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}
