package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefault(v)
	v.Set("MYSQL_HOST", "localhost")
	v.Set("MYSQL_DATABASE", "phrase")
	v.Set("MYSQL_USER", "api")
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, StorageModeBlob, cfg.Audio.StorageMode)
	assert.Equal(t, "ffmpeg", cfg.Audio.FFmpegPath)
	assert.Equal(t, time.Duration(0), cfg.Audio.ConvertTimeout)
	assert.Equal(t, int64(20<<20), cfg.Audio.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name        string
		overrides   map[string]interface{}
		expectError bool
	}{
		{name: "valid mysql", overrides: nil},
		{name: "invalid port", overrides: map[string]interface{}{"PORT": 70000}, expectError: true},
		{name: "unknown driver", overrides: map[string]interface{}{"DB_DRIVER": "postgres"}, expectError: true},
		{name: "mysql without host", overrides: map[string]interface{}{"MYSQL_HOST": ""}, expectError: true},
		{name: "sqlite needs no mysql host", overrides: map[string]interface{}{"DB_DRIVER": "sqlite", "MYSQL_HOST": ""}},
		{name: "unknown storage mode", overrides: map[string]interface{}{"AUDIO_STORAGE_MODE": "s3"}, expectError: true},
		{name: "path mode without dir", overrides: map[string]interface{}{"AUDIO_STORAGE_MODE": "path", "AUDIO_DIR": ""}, expectError: true},
		{name: "invalid log level", overrides: map[string]interface{}{"LOG_LEVEL": "trace"}, expectError: true},
		{name: "zero upload limit", overrides: map[string]interface{}{"MAX_UPLOAD_BYTES": 0}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("AUDIO_STORAGE_MODE", "path")
	t.Setenv("AUDIO_DIR", "/srv/audio")
	t.Setenv("CONVERT_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.Equal(t, StorageModePath, cfg.Audio.StorageMode)
	assert.Equal(t, "/srv/audio", cfg.Audio.AudioDir)
	assert.Equal(t, 30*time.Second, cfg.Audio.ConvertTimeout)
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
