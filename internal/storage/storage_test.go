package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"PhraseAudioService/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "audio.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(context.Background(), db))
	t.Cleanup(func() { db.Close() })
	return db
}
