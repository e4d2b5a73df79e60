package storage

import (
	"context"
	"errors"
	"testing"

	"PhraseAudioService/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourceName(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		dsn := dataSourceName(config.DatabaseConfig{
			Driver:   config.DriverMySQL,
			Host:     "db.internal",
			Port:     3306,
			Name:     "phrase",
			User:     "api",
			Password: "secret",
		})
		assert.Contains(t, dsn, "api:secret@tcp(db.internal:3306)/phrase")
		assert.Contains(t, dsn, "parseTime=true")
	})

	t.Run("sqlite adds busy timeout", func(t *testing.T) {
		dsn := dataSourceName(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "audio.db"})
		assert.Contains(t, dsn, "audio.db?")
		assert.Contains(t, dsn, "busy_timeout")
	})

	t.Run("sqlite keeps explicit options", func(t *testing.T) {
		dsn := dataSourceName(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file:x.db?mode=memory"})
		assert.Equal(t, "file:x.db?mode=memory", dsn)
	})
}

func TestWithConnReleasesConnection(t *testing.T) {
	db := newTestDB(t)
	accessor := NewAccessor(db)
	ctx := context.Background()

	err := accessor.WithConn(ctx, func(q Querier) error {
		assert.Equal(t, 1, db.Stats().InUse)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, db.Stats().InUse)

	boom := errors.New("boom")
	err = accessor.WithConn(ctx, func(q Querier) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, db.Stats().InUse)

	assert.Panics(t, func() {
		_ = accessor.WithConn(ctx, func(q Querier) error { panic("handler bug") })
	})
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestWithConnNotConnected(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	called := false
	err := NewAccessor(db).WithConn(context.Background(), func(q Querier) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, called)

	var nilAccessor *Accessor
	assert.ErrorIs(t, nilAccessor.WithConn(context.Background(), func(q Querier) error { return nil }), ErrNotConnected)
}
